package expr

func (v *VarNode) Clone() ExprNode {
	return &VarNode{Name: v.Name}
}

func (c *IntNode) Clone() ExprNode {
	return &IntNode{Val: c.Val}
}

func (c *FloatNode) Clone() ExprNode {
	return &FloatNode{Val: c.Val}
}

func (c *ComplexNode) Clone() ExprNode {
	return &ComplexNode{Val: c.Val}
}

func (c *NamedConstNode) Clone() ExprNode {
	return &NamedConstNode{Name: c.Name, Val: c.Val}
}

func (u *UnaryNode) Clone() ExprNode {
	return &UnaryNode{
		Op:    u.Op,
		Child: u.Child.Clone(),
	}
}

func (b *BinaryNode) Clone() ExprNode {
	return &BinaryNode{
		Op:    b.Op,
		Left:  b.Left.Clone(),
		Right: b.Right.Clone(),
	}
}

func (n *NaryNode) Clone() ExprNode {
	terms := make([]ExprNode, len(n.Terms))
	for i, t := range n.Terms {
		terms[i] = t.Clone()
	}
	return &NaryNode{Op: n.Op, Terms: terms}
}
