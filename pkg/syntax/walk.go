package syntax

// Walk traverses a tree depth-first in pre-order and calls fn for each node.
// Every node is visited exactly once. If fn returns false, the children of
// that node are skipped.
func Walk(node Node, fn func(n Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}

// Find returns every node, in document order, whose kind is one of kinds.
func Find(root Node, kinds ...string) []Node {
	want := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}

	var found []Node
	Walk(root, func(n Node) bool {
		if _, ok := want[n.Kind()]; ok {
			found = append(found, n)
		}
		return true
	})
	return found
}
