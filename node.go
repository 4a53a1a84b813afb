package rampart

// --- ID counter ---

// nodeIDCounter is a plain counter. rampart is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the composition hierarchy: the object a Widget is
// hosted on. Nodes carry the enabled, opacity and interaction state that
// widgets and views read and write, but no lifecycle of their own. Their
// lifetime is managed by whoever built them; widgets only observe it.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Position, used by camera follow.
	X, Y float64

	// Alpha is the opacity written by view transitions, in [0, 1].
	Alpha float64
	// Enabled is the hosting object's own enabled flag. Use SetEnabled to
	// have hosted widgets react.
	Enabled bool
	// Interactable gates input routing to this node.
	Interactable bool

	// Metadata
	UserData any

	widget   *Widget
	disposed bool
}

// NewNode creates an enabled, opaque, interactable node.
func NewNode(name string) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Alpha:        1,
		Enabled:      true,
		Interactable: true,
	}
}

// Widget returns the widget hosted on this node, or nil.
func (n *Node) Widget() *Widget {
	return n.widget
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("rampart: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("rampart: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("rampart: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("rampart: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("rampart: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("rampart: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Find returns the first descendant named name, depth-first, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Enabled state ---

// EnabledInHierarchy reports whether this node and every ancestor are
// enabled and not disposed.
func (n *Node) EnabledInHierarchy() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Enabled || p.disposed {
			return false
		}
	}
	return true
}

// SetEnabled sets the enabled flag and lets the nearest hosted widgets in
// this subtree raise Visible or Hidden accordingly.
func (n *Node) SetEnabled(enabled bool) {
	if n.Enabled == enabled {
		return
	}
	n.Enabled = enabled
	refreshHostedWidgets(n)
}

// refreshHostedWidgets re-evaluates visibility for the widget hosted on n,
// or for the nearest widgets below n when n hosts none.
func refreshHostedWidgets(n *Node) {
	if n.widget != nil {
		n.widget.refresh()
		return
	}
	for _, c := range n.children {
		refreshHostedWidgets(c)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. A hosted widget keeps its state
// but is skipped by every later propagation.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
