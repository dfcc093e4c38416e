package expr

import (
	"testing"
)

func TestVarNode(t *testing.T) {
	v := Var("x")
	if v.String() != "x" {
		t.Errorf("VarNode.String() = %q, want \"x\"", v.String())
	}
	if v.NodeCount() != 1 {
		t.Errorf("VarNode.NodeCount() = %d, want 1", v.NodeCount())
	}
	if len(v.Operands()) != 0 {
		t.Errorf("VarNode has %d operands, want 0", len(v.Operands()))
	}
}

func TestConstStrings(t *testing.T) {
	tests := []struct {
		node ExprNode
		want string
	}{
		{Int(7), "7"},
		{Int(-3), "-3"},
		{Float(2), "2.0"},
		{Float(0.25), "0.25"},
		{Float(1e21), "1e+21"},
		{Complex(1 + 2i), "(1+2i)"},
		{E, "e"},
		{Pi, "pi"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	original := &BinaryNode{
		Op:   OpAdd,
		Left: Var("x"),
		Right: &UnaryNode{
			Op:    OpSin,
			Child: Int(3),
		},
	}

	cloned := original.Clone()
	if !Equal(cloned, original) {
		t.Errorf("Clone mismatch: %q vs %q", cloned.String(), original.String())
	}

	// Modify clone, original should be unchanged
	cloned.(*BinaryNode).Right.(*UnaryNode).Child = Int(99)
	if Equal(original, cloned) {
		t.Error("Clone is not a deep copy")
	}

	sum := NewNary(OpSum, Var("x"), Int(1))
	sc := sum.Clone().(*NaryNode)
	sc.Terms[0] = Var("y")
	if sum.Terms[0].String() != "x" {
		t.Error("NaryNode clone shares its term slice")
	}
}

func TestComplexity(t *testing.T) {
	tree := &BinaryNode{
		Op:   OpAdd,
		Left: Var("x"),
		Right: &BinaryNode{
			Op:    OpMul,
			Left:  Int(2),
			Right: Var("x"),
		},
	}
	if tree.NodeCount() != 5 {
		t.Errorf("tree.NodeCount() = %d, want 5", tree.NodeCount())
	}
	if tree.Depth() != 3 {
		t.Errorf("tree.Depth() = %d, want 3", tree.Depth())
	}

	nary := Add("x", Mul(2, "y"), 1)
	if nary.NodeCount() != 6 {
		t.Errorf("nary.NodeCount() = %d, want 6", nary.NodeCount())
	}
	if nary.Depth() != 3 {
		t.Errorf("nary.Depth() = %d, want 3", nary.Depth())
	}

	if WeightedComplexity(Sin("x")) <= WeightedComplexity(Neg("x")) {
		t.Error("sin(x) should weigh more than -x")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node ExprNode
		want string
	}{
		{"binary", &BinaryNode{Op: OpAdd, Left: Var("x"), Right: &BinaryNode{Op: OpMul, Left: Int(2), Right: Var("x")}}, "x + 2 * x"},
		{"binary sub right assoc", &BinaryNode{Op: OpSub, Left: Var("a"), Right: &BinaryNode{Op: OpSub, Left: Var("b"), Right: Var("c")}}, "a - (b - c)"},
		{"sum signs", Add("x", Neg("y"), Mul(2, "z")), "x - y + 2 * z"},
		{"leading negation", Add(Neg("x"), "y"), "-x + y"},
		{"negative constant term", Add("x", Int(-2)), "x - 2"},
		{"quotient", Div("x", Add("y", 1)), "x / (y + 1)"},
		{"reciprocal", Inv("x"), "1 / x"},
		{"leading reciprocal", Mul(Inv("x"), "y"), "1 / x * y"},
		{"power of sum", Pow(Add("x", 1), 2), "(x + 1) ** 2"},
		{"negated exponent", Pow("x", Neg("y")), "x ** (-y)"},
		{"negative base", Pow(Int(-3), 2), "(-3) ** 2"},
		{"negated sum", Neg(Add("x", "y")), "-(x + y)"},
		{"negated product", Neg(Mul(2, "x")), "-(2 * x)"},
		{"function", Mul(3, Pow(Cos("x"), 2)), "3 * cos(x) ** 2"},
		{"nested power", Pow("x", Pow("y", 2)), "x ** y ** 2"},
		{"power base", Pow(Pow("x", 2), 3), "(x ** 2) ** 3"},
		{"negated factor", Mul(Neg("x"), "y"), "-x * y"},
		{"empty sum", &NaryNode{Op: OpSum}, "0"},
		{"empty product", &NaryNode{Op: OpProduct}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaTeX(t *testing.T) {
	tests := []struct {
		node ExprNode
		want string
	}{
		{Div(1, Sin("x")), "\\frac{1}{\\sin{\\left(x\\right)}}"},
		{Pow("x", 2), "{x}^{2}"},
		{Sqrt("x"), "\\sqrt{x}"},
		{Add("x", Neg("y")), "x - y"},
		{Mul(2, Pi), "2 \\cdot \\pi"},
		{Exp(Neg("x")), "e^{-x}"},
	}
	for _, tt := range tests {
		if got := tt.node.LaTeX(); got != tt.want {
			t.Errorf("LaTeX(%s) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestFlattening(t *testing.T) {
	// (a + b) + (c - (d + e)) flattens to a + b + c - d - e
	e := Add(Add("a", "b"), Sub("c", Add("d", "e")))
	n, ok := e.(*NaryNode)
	if !ok || n.Op != OpSum {
		t.Fatalf("Add built %T, want sum", e)
	}
	if len(n.Terms) != 5 {
		t.Fatalf("got %d terms, want 5: %s", len(n.Terms), e)
	}
	if got := e.String(); got != "a + b + c - d - e" {
		t.Errorf("String() = %q", got)
	}

	// a * (b / (c * d)) flattens to a * b / c / d
	p := Mul("a", Div("b", Mul("c", "d")))
	if got := p.String(); got != "a * b / c / d" {
		t.Errorf("String() = %q", got)
	}
	if len(p.(*NaryNode).Terms) != 4 {
		t.Errorf("got %d factors, want 4", len(p.(*NaryNode).Terms))
	}
}

func TestFreeVariables(t *testing.T) {
	e := Add(Mul("y", Sin("x")), Pow("z", "x"), E)
	got := FreeVariables(e)
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("FreeVariables = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FreeVariables = %v, want %v", got, want)
		}
	}
	if len(FreeVariables(Int(4))) != 0 {
		t.Error("constant has free variables")
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Add("x", "y"), Add("x", "y")) {
		t.Error("identical sums should be equal")
	}
	if Equal(Add("x", "y"), Add("y", "x")) {
		t.Error("equality must be syntactic")
	}
	if Equal(Int(2), Float(2)) {
		t.Error("2 and 2.0 differ structurally")
	}
	if !Equal(NaN().Node(), NaN().Node()) {
		t.Error("NaN constants should be structurally equal")
	}
	if Equal(E, &NamedConstNode{Name: "e", Val: 3}) {
		t.Error("named constants compare by name and value")
	}
}
