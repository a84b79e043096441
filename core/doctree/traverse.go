package doctree

// Walk visits every node in the tree in document order, root first.
// Returning false from fn stops descent into the node's children (the
// walk continues with siblings). Pending captions are visited too.
func Walk(root Node, fn func(Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	switch n := root.(type) {
	case *Element:
		for _, child := range n.Children {
			Walk(child, fn)
		}
	case *Pending:
		if n.Content != nil {
			Walk(n.Content, fn)
		}
	}
}

// CollectPending returns every pending reference of the given kind, in
// document order. Pendings nested inside another pending's caption are
// not collected; they belong to the outer reference's content.
func CollectPending(root Node, kind string) []*Pending {
	var out []*Pending
	Walk(root, func(n Node) bool {
		if p, ok := n.(*Pending); ok {
			if p.Kind == kind {
				out = append(out, p)
			}
			return false
		}
		return true
	})
	return out
}

// ReplaceNode replaces old with replacement wherever old appears as a
// child inside the tree rooted at root. Matching is by identity, so a
// node can be replaced at most once. Returns true if a replacement
// happened.
func ReplaceNode(root *Element, old, replacement Node) bool {
	if root == nil {
		return false
	}
	for i, child := range root.Children {
		if child == old {
			root.Children[i] = replacement
			return true
		}
		switch n := child.(type) {
		case *Element:
			if ReplaceNode(n, old, replacement) {
				return true
			}
		case *Pending:
			if n.Content != nil && ReplaceNode(n.Content, old, replacement) {
				return true
			}
		}
	}
	return false
}
