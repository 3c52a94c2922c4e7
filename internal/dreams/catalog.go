// Package dreams holds the built-in dream implementations.
package dreams

import (
	"log/slog"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/config"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// Catalog returns every built-in dream, in the order they are listed to users.
func Catalog() []dream.Entry {
	return []dream.Entry{
		{ID: FractalClockID, New: func(deps dream.Deps) dream.Dream { return NewFractalClock(deps) }},
		{ID: SolidColorID, New: func(deps dream.Deps) dream.Dream { return NewSolidColor(deps) }},
		{ID: MonetID, New: func(deps dream.Deps) dream.Dream { return NewMonet(deps) }},
	}
}

// activeScheme returns the color scheme currently named in the settings.
func activeScheme(deps dream.Deps) colorscheme.Scheme {
	name := colorscheme.DefaultName
	if err := deps.Settings.Read(func(s *config.Settings) {
		name = s.ColorScheme
	}); err != nil {
		deps.Logger.Warn("failed to read color scheme", "error", err)
	}
	return colorscheme.Resolve(name)
}

func withDefaults(deps dream.Deps) dream.Deps {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return deps
}
