package world

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/containers"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/scene"
)

// ActorPair tracks one actor-carrying component and the object it was
// attached to. Pairs hold handles whose liveness is checked through
// the scene tree, never through the pair itself, so destroying either
// side elsewhere takes effect here without bookkeeping.
type ActorPair struct {
	object    *scene.GameObject
	component *scene.Component
}

func (p *ActorPair) resolve() (Actor, bool) {
	if !p.object.Alive() || !p.component.Alive() {
		return nil, false
	}
	actor, ok := p.component.Payload().(Actor)
	return actor, ok
}

type resolvedPair struct {
	object    *scene.GameObject
	component *scene.Component
	actor     Actor
}

const eventQueueSize = 256

// World drives actor lifecycles over a scene tree and owns the frame
// order: events, activation, update, pruning, stats. One Step call is
// one frame; everything inside runs on the calling thread.
type World struct {
	tree         *scene.Tree
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager

	newActors []*ActorPair
	actors    []*ActorPair

	events  *containers.RingQueue[core.EventContext]
	metrics *core.Metrics

	showStats   bool
	delta       float64
	frameNumber uint64
}

func newWorld(tree *scene.Tree, r *renderer.Renderer, am *assets.AssetManager, showStats bool) *World {
	w := &World{
		tree:         tree,
		renderer:     r,
		assetManager: am,
		events:       containers.NewRingQueue[core.EventContext](eventQueueSize),
		metrics:      core.NewMetrics(),
		showStats:    showStats,
	}
	tree.AddWatcher(w.watchComponents)
	return w
}

// watchComponents feeds the activation queue. Adds enqueue any
// actor-carrying component; removes sweep the queue, dropping entries
// that are dead or identical to the removed component. Dead entries
// cannot prove they are not the removed one, so they go too.
func (w *World) watchComponents(event scene.ComponentEvent, object *scene.GameObject, component *scene.Component) {
	if !IsActor(component) {
		return
	}
	switch event {
	case scene.ComponentAdded:
		w.newActors = append(w.newActors, &ActorPair{object: object, component: component})
	case scene.ComponentRemoved:
		kept := w.newActors[:0]
		for _, pair := range w.newActors {
			if !pair.component.Alive() || pair.component == component {
				continue
			}
			kept = append(kept, pair)
		}
		for i := len(kept); i < len(w.newActors); i++ {
			w.newActors[i] = nil
		}
		w.newActors = kept
	}
}

func (w *World) Tree() *scene.Tree {
	return w.tree
}

func (w *World) Root() *scene.GameObject {
	return w.tree.Root()
}

func (w *World) Renderer() *renderer.Renderer {
	return w.renderer
}

func (w *World) Assets() *assets.AssetManager {
	return w.assetManager
}

// Delta is the frame time of the Step currently running, in seconds.
func (w *World) Delta() float64 {
	return w.delta
}

func (w *World) FrameNumber() uint64 {
	return w.frameNumber
}

// ActorCount reports live, started actors.
func (w *World) ActorCount() int {
	return len(w.actors)
}

// QueuedActorCount reports actors awaiting activation.
func (w *World) QueuedActorCount() int {
	return len(w.newActors)
}

func (w *World) NewGameObject(name string) *scene.GameObject {
	return w.tree.NewObject(name)
}

func (w *World) RemoveGameObject(object *scene.GameObject) {
	if object == nil {
		return
	}
	object.Destroy()
}

// PushEvent queues an input or window event for the next Step. When
// the queue is full the oldest event is dropped to make room.
func (w *World) PushEvent(event core.EventContext) {
	if err := w.events.Enqueue(event); err != nil {
		core.LogWarn("event queue full, dropping oldest event")
		w.events.Dequeue()
		w.events.Enqueue(event)
	}
}

// Step runs one frame:
//
//  1. Drain queued window events, propagating resizes to the renderer.
//  2. Drain the activation queue; pairs whose object and component are
//     both still alive get Start exactly once and join the live list.
//     Pairs destroyed before activation are silently dropped.
//  3. Snapshot the live list, resolving handles now, so mutations made
//     by actors during this frame cannot change who runs this frame.
//  4. Update every snapshot entry in insertion order.
//  5. Prune the live list: only pairs whose component died leave.
//  6. Roll frame metrics and refresh the stat overlay.
func (w *World) Step(delta float64) {
	w.delta = delta
	w.frameNumber++

	w.processEvents()
	w.activateActors()

	snapshot := w.snapshotActors()
	for _, entry := range snapshot {
		entry.component.Exclusive(func() {
			entry.actor.Update(entry.object, w)
		})
	}

	w.pruneActors()
	w.metrics.Update(delta)
	w.publishStats()
}

func (w *World) processEvents() {
	for {
		event, err := w.events.Dequeue()
		if err != nil {
			return
		}
		if event.Type != core.EVENT_CODE_RESIZED {
			continue
		}
		if windowEvent, ok := event.Data.(*core.WindowEvent); ok {
			w.renderer.OnResize(uint16(windowEvent.Width), uint16(windowEvent.Height))
		}
	}
}

// activateActors drains the queue filled since last frame. Components
// added during this pass (by a Start call) land in the queue for the
// next frame, never this one.
func (w *World) activateActors() {
	batch := w.newActors
	w.newActors = nil

	for _, pair := range batch {
		actor, ok := pair.resolve()
		if !ok {
			continue
		}
		pair.component.Exclusive(func() {
			actor.Start(pair.object, w)
		})
		w.actors = append(w.actors, pair)
	}
}

func (w *World) snapshotActors() []resolvedPair {
	snapshot := make([]resolvedPair, 0, len(w.actors))
	for _, pair := range w.actors {
		actor, ok := pair.resolve()
		if !ok {
			continue
		}
		snapshot = append(snapshot, resolvedPair{
			object:    pair.object,
			component: pair.component,
			actor:     actor,
		})
	}
	return snapshot
}

// pruneActors drops pairs whose component died. Object death alone is
// not enough; the pair stays while the component lives.
func (w *World) pruneActors() {
	kept := w.actors[:0]
	for _, pair := range w.actors {
		if !pair.component.Alive() {
			continue
		}
		kept = append(kept, pair)
	}
	for i := len(kept); i < len(w.actors); i++ {
		w.actors[i] = nil
	}
	w.actors = kept
}

func (w *World) publishStats() {
	if !w.showStats {
		return
	}
	w.renderer.SetOverlayText(fmt.Sprintf("fps: %d nobj: %d actors: %d queued: %d",
		int(w.metrics.FPS()), w.tree.ObjectCount(), len(w.actors), len(w.newActors)))
}

// Reset tears the world back to its initial state: all actors gone,
// the tree emptied, cached textures released and the camera reset.
// Watchers stay registered so the world keeps working after.
func (w *World) Reset() {
	w.actors = nil
	w.newActors = nil
	w.tree.Reset()
	w.renderer.Reset()
	w.renderer.MainCamera().Reset()
	w.frameNumber = 0
}

// Shutdown stops the asset pipeline and releases device resources.
// The world must not be stepped afterwards.
func (w *World) Shutdown() error {
	if err := w.assetManager.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	return w.renderer.Shutdown()
}
