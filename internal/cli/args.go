// Package cli decodes the screensaver command line.
//
// Hosts launch screensavers with Windows-style switches that may be upper or
// lower case, and attach the host window handle either after a colon or as a
// separate argument:
//
//	(none)                show fullscreen
//	/s, /s:<h>, /s <h>    show, optionally bound to a host window
//	/c, /c:<h>            open the configuration editor
//	/p:<h>, /p <h>        preview into a host window (handle required)
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is the top-level action requested on the command line.
type Command int

const (
	// CommandShow runs the dreams.
	CommandShow Command = iota
	// CommandConfig opens the configuration editor.
	CommandConfig
	// CommandPreview renders a preview into a host window.
	CommandPreview
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandShow:
		return "show"
	case CommandConfig:
		return "config"
	case CommandPreview:
		return "preview"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Args is the decoded command line.
type Args struct {
	Command Command
	// Handle is the host window handle; 0 means none was supplied.
	Handle uint64
}

// HasHandle reports whether a host window handle was supplied.
func (a Args) HasHandle() bool {
	return a.Handle != 0
}

// ParseError describes a malformed command line.
type ParseError struct {
	Args   []string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid arguments %q: %s", e.Args, e.Reason)
}

// ParseArgs decodes args, where args[0] is the program name as in os.Args.
// An empty slice is treated like a bare program name.
func ParseArgs(args []string) (Args, error) {
	fail := func(reason string) (Args, error) {
		return Args{}, &ParseError{Args: args, Reason: reason}
	}

	if len(args) > 3 {
		return fail("too many arguments")
	}
	if len(args) <= 1 {
		return Args{Command: CommandShow}, nil
	}

	lowered := make([]string, len(args))
	for i, a := range args {
		lowered[i] = strings.ToLower(a)
	}

	var separate uint64
	if len(lowered) == 3 {
		h, err := parseHandle(lowered[2])
		if err != nil {
			return fail(err.Error())
		}
		separate = h
	}

	switchArg := []rune(lowered[1])
	if len(switchArg) < 2 || switchArg[0] != '/' {
		return fail("expected a switch like /s, /c or /p")
	}

	var attached uint64
	if len(switchArg) > 2 {
		if switchArg[2] != ':' {
			return fail("expected ':' after the command letter")
		}
		h, err := parseHandle(string(switchArg[3:]))
		if err != nil {
			return fail(err.Error())
		}
		attached = h
	}

	if separate != 0 && attached != 0 {
		return fail("handle given twice")
	}
	handle := separate
	if attached != 0 {
		handle = attached
	}

	var cmd Command
	switch switchArg[1] {
	case 's':
		cmd = CommandShow
	case 'c':
		cmd = CommandConfig
	case 'p':
		cmd = CommandPreview
	default:
		return fail(fmt.Sprintf("unknown command letter %q", switchArg[1]))
	}

	if cmd == CommandPreview && handle == 0 {
		return fail("preview requires a window handle")
	}

	return Args{Command: cmd, Handle: handle}, nil
}

// parseHandle parses a positive decimal window handle.
func parseHandle(s string) (uint64, error) {
	h, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q", s)
	}
	if h == 0 {
		return 0, fmt.Errorf("window handle must be positive")
	}
	return h, nil
}
