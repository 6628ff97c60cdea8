package ast

import "iter"

// Visitor defines the interface for tree traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each child of node: the callee of a call
// before its arguments, and each default of a pairlist in order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	switch n := node.(type) {
	case *Call:
		Walk(v, n.callee)
		for _, a := range n.args {
			Walk(v, a.Value)
		}
	case *Pairlist:
		for _, f := range n.formals {
			Walk(v, f.Default)
		}
	case *Constant, *Name:
		// No children
	}
}

// Inspect traverses a tree in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the tree rooted at root
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			switch node := n.(type) {
			case *Call:
				if !visit(node.callee) {
					return false
				}
				for _, a := range node.args {
					if !visit(a.Value) {
						return false
					}
				}
			case *Pairlist:
				for _, f := range node.formals {
					if !visit(f.Default) {
						return false
					}
				}
			}
			return true
		}
		visit(root)
	}
}

// Names returns the distinct non-empty identifiers referenced in the tree,
// in order of first appearance. Formal parameter names are not included.
func Names(root Node) []string {
	var out []string
	seen := map[string]bool{}
	for n := range Preorder(root) {
		if x, ok := n.(*Name); ok && !x.IsEmpty() && !seen[x.id] {
			seen[x.id] = true
			out = append(out, x.id)
		}
	}
	return out
}

// Substitute returns a copy of the tree in which every name found in
// bindings is replaced by a copy of the bound tree. The input is not
// modified. Formal parameter names are never replaced, only defaults.
func Substitute(root Node, bindings map[string]Node) Node {
	switch n := root.(type) {
	case *Name:
		if !n.IsEmpty() {
			if repl, ok := bindings[n.id]; ok && repl != nil {
				return Clone(repl)
			}
		}
		return Clone(n)
	case *Call:
		args := make([]Arg, len(n.args))
		for i, a := range n.args {
			args[i] = Arg{Tag: a.Tag, Value: Substitute(a.Value, bindings)}
		}
		callee := Substitute(n.callee, bindings)
		if checkCallee(callee) != nil {
			// The replacement cannot stand in the function slot; embed it so
			// the result is still a well-formed call.
			callee = Embed(callee)
		}
		return &Call{pos: n.pos, callee: callee, args: args}
	case *Pairlist:
		formals := make([]Formal, len(n.formals))
		for i, f := range n.formals {
			formals[i] = Formal{Name: f.Name, Default: Substitute(f.Default, bindings)}
		}
		return &Pairlist{pos: n.pos, formals: formals}
	}
	return Clone(root)
}
