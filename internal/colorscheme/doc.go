// Package colorscheme provides the terminal-style color schemes dreams paint with.
// The bundled catalogue is embedded as YAML; settings refer to a scheme by name.
package colorscheme
