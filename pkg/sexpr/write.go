package sexpr

// Bytes serializes the whole tree, reproducing the original input exactly
// when no mutations were applied.
func (t *Tree) Bytes() []byte {
	var buf []byte

	for _, id := range t.roots {
		buf = t.appendNode(buf, id, true)
	}

	return append(buf, t.tail...)
}

// NodeBytes serializes a single subtree. The node's own leading whitespace
// is omitted, so a list yields text starting at its '('.
func (t *Tree) NodeBytes(id NodeID) []byte {
	return t.appendNode(nil, id, false)
}

func (t *Tree) appendNode(buf []byte, id NodeID, withLead bool) []byte {
	n := &t.nodes[id]

	if withLead {
		buf = append(buf, n.lead...)
	}

	if n.kind != KindList {
		return append(buf, n.text...)
	}

	buf = append(buf, '(')

	for _, c := range n.children {
		buf = t.appendNode(buf, c, true)
	}

	buf = append(buf, n.closeLead...)

	return append(buf, ')')
}
