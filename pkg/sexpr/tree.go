package sexpr

import (
	"strings"
)

// NodeID identifies a node within a [Tree] arena.
type NodeID int32

// None is the NodeID returned when no node exists.
const None NodeID = -1

// Kind classifies a node.
type Kind uint8

const (
	// KindList is a parenthesized block.
	KindList Kind = iota
	// KindAtom is a bare symbol or numeric literal.
	KindAtom
	// KindString is a double-quoted string literal.
	KindString
)

type node struct {
	lead      string
	text      string
	closeLead string
	children  []NodeID
	parent    NodeID
	kind      Kind
}

// Tree is an arena-backed s-expression tree. The zero value is not usable;
// create trees with [Parse] or [NewTree].
type Tree struct {
	nodes []node
	roots []NodeID
	tail  string
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Roots returns the top-level nodes in document order.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Kind returns the kind of the given node.
func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].kind
}

// Parent returns the parent of the given node, or [None] for top-level nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the children of a list node in document order. The
// returned slice is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// Text returns the verbatim source text of an atom or string node.
func (t *Tree) Text(id NodeID) string {
	return t.nodes[id].text
}

// Lead returns the whitespace preceding the node's first byte.
func (t *Tree) Lead(id NodeID) string {
	return t.nodes[id].lead
}

// SetLead replaces the whitespace preceding the node's first byte.
func (t *Tree) SetLead(id NodeID, lead string) {
	t.nodes[id].lead = lead
}

// SetText replaces the source text of an atom or string node.
func (t *Tree) SetText(id NodeID, text string) {
	t.nodes[id].text = text
}

// Head returns the leading symbol of a list node, e.g. "footprint" for
// `(footprint ...)`. It returns "" if the node is not a list or its first
// child is not an atom.
func (t *Tree) Head(id NodeID) string {
	n := &t.nodes[id]
	if n.kind != KindList || len(n.children) == 0 {
		return ""
	}

	c := &t.nodes[n.children[0]]
	if c.kind != KindAtom {
		return ""
	}

	return c.text
}

// Value returns the logical value of an atom or string node: the verbatim
// text for atoms, the unescaped content for strings.
func (t *Tree) Value(id NodeID) string {
	n := &t.nodes[id]
	if n.kind == KindString {
		return unquote(n.text)
	}

	return n.text
}

// NewAtom allocates a bare atom node with the given leading whitespace.
func (t *Tree) NewAtom(lead, text string) NodeID {
	return t.alloc(node{kind: KindAtom, lead: lead, text: text, parent: None})
}

// NewString allocates a quoted string node holding the given value.
func (t *Tree) NewString(lead, value string) NodeID {
	return t.alloc(node{kind: KindString, lead: lead, text: quote(value), parent: None})
}

// NewList allocates an empty list node.
func (t *Tree) NewList(lead, closeLead string) NodeID {
	return t.alloc(node{kind: KindList, lead: lead, closeLead: closeLead, parent: None})
}

// AppendChild appends child to the end of the list node's children.
func (t *Tree) AppendChild(list, child NodeID) {
	t.nodes[child].parent = list
	t.nodes[list].children = append(t.nodes[list].children, child)
}

// InsertChild inserts child at index i of the list node's children.
func (t *Tree) InsertChild(list NodeID, i int, child NodeID) {
	t.nodes[child].parent = list

	cs := t.nodes[list].children
	cs = append(cs, None)
	copy(cs[i+1:], cs[i:])
	cs[i] = child
	t.nodes[list].children = cs
}

// RemoveChild detaches and returns the child at index i of the list node.
// The node stays allocated in the arena but is no longer serialized.
func (t *Tree) RemoveChild(list NodeID, i int) NodeID {
	cs := t.nodes[list].children
	child := cs[i]
	t.nodes[list].children = append(cs[:i], cs[i+1:]...)
	t.nodes[child].parent = None

	return child
}

func (t *Tree) alloc(n node) NodeID {
	t.nodes = append(t.nodes, n)

	return NodeID(len(t.nodes) - 1)
}

func quote(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)

	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)

			continue
		}

		i++

		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
