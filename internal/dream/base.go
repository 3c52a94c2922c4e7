package dream

import "fmt"

// NotImplementedError is the panic value raised when a dream is asked for a
// capability it does not provide.
type NotImplementedError struct {
	Dream      ID
	Capability string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("dream %s does not implement %s", e.Dream, e.Capability)
}

// Base supplies the optional parts of the Dream contract. Dreams embed it and
// override what they support; Render and Configure panic unless overridden.
type Base struct {
	DreamID ID
}

func (b Base) ID() ID                   { return b.DreamID }
func (b Base) Type() Type               { return TypeCanvas }
func (b Base) InDevelopment() bool      { return false }
func (b Base) RequiresLoadScreen() bool { return false }
func (b Base) Prepare() error           { return nil }
func (b Base) Store() error             { return nil }

func (b Base) PreferredUpdateRate() UpdateRate {
	return Smooth()
}

func (b Base) Render(Surface) {
	panic(&NotImplementedError{Dream: b.DreamID, Capability: "render"})
}

func (b Base) Configure(Controls) bool {
	panic(&NotImplementedError{Dream: b.DreamID, Capability: "configure"})
}
