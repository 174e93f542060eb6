package scene

// GameObject is a node in the scene tree. Objects own their components
// and child objects; destroying an object cascades to both. An object
// is alive from creation until Destroy, and dead objects reject
// further mutation.
type GameObject struct {
	id         uint64
	name       string
	tree       *Tree
	parent     *GameObject
	children   []*GameObject
	components []*Component
	alive      bool
}

func (o *GameObject) ID() uint64 {
	return o.id
}

func (o *GameObject) Name() string {
	return o.name
}

func (o *GameObject) Alive() bool {
	return o.alive
}

func (o *GameObject) Tree() *Tree {
	return o.tree
}

func (o *GameObject) Parent() *GameObject {
	return o.parent
}

func (o *GameObject) Children() []*GameObject {
	return o.children
}

// NewChild creates an object parented under this one.
func (o *GameObject) NewChild(name string) *GameObject {
	if !o.alive {
		return nil
	}
	child := o.tree.newObject(name, o)
	o.children = append(o.children, child)
	return child
}

// AddComponent attaches a behavior payload and notifies the tree's
// watchers synchronously, before returning.
func (o *GameObject) AddComponent(payload interface{}) *Component {
	if !o.alive {
		return nil
	}
	c := &Component{
		id:      o.tree.nextID(),
		owner:   o,
		payload: payload,
	}
	o.components = append(o.components, c)
	o.tree.components.Put(c.id, c)
	o.tree.notify(ComponentAdded, o, c)
	return c
}

// RemoveComponent detaches the component. Watchers observe the removal
// with the component already dead. Removing a component that is not
// attached to this object is a no-op.
func (o *GameObject) RemoveComponent(c *Component) {
	if c == nil || c.owner != o {
		return
	}
	for i, held := range o.components {
		if held == c {
			o.components = append(o.components[:i], o.components[i+1:]...)
			break
		}
	}
	o.detach(c)
}

func (o *GameObject) detach(c *Component) {
	c.owner = nil
	o.tree.components.Del(c.id)
	o.tree.notify(ComponentRemoved, o, c)
}

func (o *GameObject) Components() []*Component {
	return o.components
}

// FindComponent returns the first component whose payload satisfies
// the predicate.
func (o *GameObject) FindComponent(match func(payload interface{}) bool) *Component {
	for _, c := range o.components {
		if match(c.payload) {
			return c
		}
	}
	return nil
}

// Destroy removes the object from the tree: children first, then
// components (watchers observe each removal), then the object itself.
// Destroying twice is a no-op.
func (o *GameObject) Destroy() {
	if !o.alive {
		return
	}
	o.alive = false

	for len(o.children) > 0 {
		o.children[len(o.children)-1].Destroy()
	}

	for len(o.components) > 0 {
		c := o.components[len(o.components)-1]
		o.components = o.components[:len(o.components)-1]
		o.detach(c)
	}

	if o.parent != nil {
		siblings := o.parent.children
		for i, held := range siblings {
			if held == o {
				o.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		o.parent = nil
	}

	o.tree.objects.Del(o.id)
}
