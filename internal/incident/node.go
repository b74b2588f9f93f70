package incident

import "strings"

// Node is one element of a loaded document.
type Node struct {
	Tag string
	// Text is the character data that precedes the first child element.
	Text     string
	Children []*Node
}

// Value returns the node text with surrounding whitespace removed.
func (n *Node) Value() string {
	return strings.TrimSpace(n.Text)
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns the direct children with the given tag in document order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and all of its descendants depth-first, in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Field is a name/value pair taken from a record.
type Field struct {
	Name  string
	Value string
}

// Fields returns the descendant fields of record that carry any text, in
// depth-first order. Text made only of whitespace still yields a field, with
// an empty value. Elements tagged skipTag, which includes the record itself,
// are left out but their descendants are still visited.
func Fields(record *Node, skipTag string) []Field {
	var fields []Field
	record.Walk(func(n *Node) {
		if n.Tag == skipTag || n.Text == "" {
			return
		}
		fields = append(fields, Field{Name: n.Tag, Value: n.Value()})
	})
	return fields
}
