package scene

import "fmt"

// Component attaches a behavior payload to a GameObject. A component
// is alive while it is attached; detaching it (directly or through
// object destruction) severs the owner link permanently. Holders of a
// detached component see Alive() == false and are expected to drop it.
type Component struct {
	id      uint64
	owner   *GameObject
	payload interface{}
	busy    bool
}

func (c *Component) ID() uint64 {
	return c.id
}

// Owner returns the object the component is attached to, or nil once
// the component has been removed.
func (c *Component) Owner() *GameObject {
	return c.owner
}

func (c *Component) Alive() bool {
	return c.owner != nil
}

func (c *Component) Payload() interface{} {
	return c.payload
}

// Exclusive runs fn while holding the component's exclusive borrow.
// Re-entering a component that is already borrowed is a programming
// error and panics: a behavior must not mutate itself through a second
// path while inside its own call.
func (c *Component) Exclusive(fn func()) {
	if c.busy {
		panic(fmt.Sprintf("component %d already exclusively borrowed", c.id))
	}
	c.busy = true
	defer func() { c.busy = false }()
	fn()
}
