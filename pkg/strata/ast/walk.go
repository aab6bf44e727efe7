package ast

// Visitor is called once for every node during a Walk.
// Returning a non-nil error stops the walk and propagates the error.
type Visitor func(*Node) error

// Walk visits every node of the tree exactly once, in source order.
//
// Traversal uses an explicit work stack rather than recursion so that
// adversarially deep documents cannot exhaust the call stack.
func Walk(root *Node, visit Visitor) error {
	if root == nil {
		return nil
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := visit(n); err != nil {
			return err
		}

		// Push children in reverse so they pop in source order.
		switch n.Kind {
		case KindSequence:
			for i := len(n.Items) - 1; i >= 0; i-- {
				stack = append(stack, n.Items[i])
			}
		case KindMapping:
			for i := len(n.Pairs) - 1; i >= 0; i-- {
				stack = append(stack, n.Pairs[i].Value)
				stack = append(stack, n.Pairs[i].Key)
			}
		case KindTagged:
			if n.Inner != nil {
				stack = append(stack, n.Inner)
			}
		}
	}

	return nil
}
