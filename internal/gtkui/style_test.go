package gtkui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
)

func TestStyleCSS(t *testing.T) {
	scheme := colorscheme.Default()
	scheme.Background = colorscheme.RGB(1, 2, 3)

	css := StyleCSS(scheme)
	assert.Contains(t, css, "window.dreamspinner-viewport")
	assert.Contains(t, css, "rgb(1, 2, 3)")
}
