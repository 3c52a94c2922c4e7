package gtkui

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
)

// styleClass is added to every viewport window.
const styleClass = "dreamspinner-viewport"

// StyleCSS returns the stylesheet painting viewport windows with the
// scheme's background, so nothing flashes before the first frame.
func StyleCSS(scheme colorscheme.Scheme) string {
	bg := scheme.Background
	return fmt.Sprintf(`window.%s, window.%s drawingarea {
	background-color: rgb(%d, %d, %d);
}
`, styleClass, styleClass, bg.R, bg.G, bg.B)
}

// ApplyStyle installs the viewport stylesheet on the default display.
func ApplyStyle(scheme colorscheme.Scheme, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	display := gdk.DisplayGetDefault()
	if display == nil {
		logger.Warn("no display available, cannot apply style")
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(StyleCSS(scheme))
	gtk.StyleContextAddProviderForDisplay(display, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	logger.Debug("applied viewport style", "scheme", scheme.Name)
}
