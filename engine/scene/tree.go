// Package scene provides the object/component tree the runtime drives.
// The tree knows nothing about behaviors: it stores objects, attaches
// opaque component payloads and reports every attach/detach to
// registered watchers, synchronously with the mutation.
package scene

import (
	"github.com/kamstrup/intmap"
)

type ComponentEvent uint8

const (
	ComponentAdded ComponentEvent = iota
	ComponentRemoved
)

// WatcherFunc observes component lifecycle events. Callbacks run
// inline with the mutation that triggered them; on removal the
// component is already detached.
type WatcherFunc func(event ComponentEvent, object *GameObject, component *Component)

// Tree owns all live objects and components, keyed by id for O(1)
// liveness checks. It is not safe for concurrent use; the runtime
// drives it from a single frame thread.
type Tree struct {
	root       *GameObject
	objects    *intmap.Map[uint64, *GameObject]
	components *intmap.Map[uint64, *Component]
	watchers   []WatcherFunc
	lastID     uint64
}

func NewTree() *Tree {
	t := &Tree{
		objects:    intmap.New[uint64, *GameObject](256),
		components: intmap.New[uint64, *Component](256),
	}
	t.root = t.newObject("root", nil)
	return t
}

func (t *Tree) Root() *GameObject {
	return t.root
}

// NewObject creates an object under the root.
func (t *Tree) NewObject(name string) *GameObject {
	return t.root.NewChild(name)
}

// FindObject resolves an object id to a live object.
func (t *Tree) FindObject(id uint64) (*GameObject, bool) {
	return t.objects.Get(id)
}

// FindComponent resolves a component id to a live component.
func (t *Tree) FindComponent(id uint64) (*Component, bool) {
	return t.components.Get(id)
}

// ObjectCount reports live objects, root included.
func (t *Tree) ObjectCount() int {
	return t.objects.Len()
}

func (t *Tree) ComponentCount() int {
	return t.components.Len()
}

// AddWatcher subscribes to component add/remove events, scene-wide.
func (t *Tree) AddWatcher(fn WatcherFunc) {
	t.watchers = append(t.watchers, fn)
}

// Reset destroys everything under the root and the root's own
// components, leaving an empty tree with the same root. Watchers stay
// registered and observe the removals.
func (t *Tree) Reset() {
	for len(t.root.children) > 0 {
		t.root.children[len(t.root.children)-1].Destroy()
	}
	for len(t.root.components) > 0 {
		c := t.root.components[len(t.root.components)-1]
		t.root.components = t.root.components[:len(t.root.components)-1]
		t.root.detach(c)
	}

	t.objects.Clear()
	t.components.Clear()
	t.objects.Put(t.root.id, t.root)
}

func (t *Tree) newObject(name string, parent *GameObject) *GameObject {
	o := &GameObject{
		id:     t.nextID(),
		name:   name,
		tree:   t,
		parent: parent,
		alive:  true,
	}
	t.objects.Put(o.id, o)
	return o
}

func (t *Tree) nextID() uint64 {
	t.lastID++
	return t.lastID
}

func (t *Tree) notify(event ComponentEvent, object *GameObject, component *Component) {
	for _, fn := range t.watchers {
		fn(event, object, component)
	}
}
