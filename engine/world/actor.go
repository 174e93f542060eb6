package world

import "github.com/spaghettifunk/aurora/engine/scene"

// Actor is the behavior capability a component payload may implement.
// The runtime calls Start exactly once, before the first Update, and
// then Update every frame until the component dies. Both calls happen
// on the frame thread with the component exclusively borrowed.
type Actor interface {
	Start(object *scene.GameObject, world *World)
	Update(object *scene.GameObject, world *World)
}

// BaseActor is an embeddable no-op Actor. Behaviors embed it and
// override the calls they care about.
type BaseActor struct{}

func (BaseActor) Start(object *scene.GameObject, world *World)  {}
func (BaseActor) Update(object *scene.GameObject, world *World) {}

// IsActor reports whether a component's payload carries the Actor
// capability.
func IsActor(component *scene.Component) bool {
	_, ok := component.Payload().(Actor)
	return ok
}
