package expr

import (
	"math"
	"sort"
)

// pairRule combines two operands into one, or returns nil.
type pairRule func(a, b ExprNode) ExprNode

// simplifySum canonicalizes a sum. Terms are ranked by degree, split into
// positive and negated buckets, merged pairwise inside each bucket, then
// across buckets by subtraction.
func simplifySum(terms []ExprNode) ExprNode {
	terms = flatten(OpSum, terms, nil)
	switch len(terms) {
	case 0:
		return intc(0)
	case 1:
		return terms[0]
	}
	terms = rankSum(terms)

	var pos, negs []ExprNode
	for _, t := range terms {
		if isNeg(t) {
			negs = append(negs, absNeg(t))
		} else {
			pos = append(pos, t)
		}
	}
	pos = combinePairs(pos, addRule)
	negs = combinePairs(negs, addRule)
	pos, negs = combineAcross(pos, negs, subRule)

	out := make([]ExprNode, 0, len(pos)+len(negs))
	out = append(out, pos...)
	for _, t := range negs {
		// a leading negated constant prints as -k, which reads back as
		// the negative literal
		if c, ok := constValue(t); ok && len(out) == 0 {
			out = append(out, c.Neg().Node())
			continue
		}
		out = append(out, neg(t))
	}
	return collapse(OpSum, out)
}

// simplifyProduct canonicalizes a product: the leading numeric constant
// moves to the front, factors split into numerator and denominator, and
// merge pairwise inside each bucket and then across by division.
func simplifyProduct(terms []ExprNode) ExprNode {
	terms = flatten(OpProduct, terms, nil)
	switch len(terms) {
	case 0:
		return intc(1)
	case 1:
		return terms[0]
	}
	terms = rankProduct(terms)

	var num, den []ExprNode
	for _, t := range terms {
		if isInv(t) {
			den = append(den, absInv(t))
		} else {
			num = append(num, t)
		}
	}
	num = combinePairs(num, mulRule)
	den = combinePairs(den, mulRule)
	num, den = combineAcross(num, den, divRule)

	// 1 / x rather than 1 * (1 / x)
	if len(num) == 1 && len(den) > 0 {
		if c, ok := num[0].(*IntNode); ok && c.Val == 1 {
			num = nil
		}
	}

	out := make([]ExprNode, 0, len(num)+len(den))
	out = append(out, num...)
	for _, t := range den {
		out = append(out, inv(t))
	}
	return collapse(OpProduct, out)
}

// combinePairs merges the first pair (i < j) the rule accepts, appends the
// result and rescans from the start, until a full scan merges nothing.
func combinePairs(items []ExprNode, rule pairRule) []ExprNode {
	items = append([]ExprNode(nil), items...)
	for {
		merged := false
		for i := 0; i < len(items) && !merged; i++ {
			for j := i + 1; j < len(items); j++ {
				r := rule(items[i], items[j])
				if r == nil {
					continue
				}
				rest := make([]ExprNode, 0, len(items)-1)
				for k, t := range items {
					if k != i && k != j {
						rest = append(rest, t)
					}
				}
				items = append(rest, r)
				merged = true
				break
			}
		}
		if !merged {
			return items
		}
	}
}

// combineAcross merges a[i] with b[j] under the same scan discipline as
// combinePairs. A merged result joins a.
func combineAcross(a, b []ExprNode, rule pairRule) ([]ExprNode, []ExprNode) {
	a = append([]ExprNode(nil), a...)
	b = append([]ExprNode(nil), b...)
	for {
		merged := false
		for i := 0; i < len(a) && !merged; i++ {
			for j := 0; j < len(b); j++ {
				r := rule(a[i], b[j])
				if r == nil {
					continue
				}
				a = append(append(a[:i:i], a[i+1:]...), r)
				b = append(b[:j:j], b[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return a, b
		}
	}
}

// rankSum stably orders terms by degree, highest first. A term's degree is
// the largest numeric exponent among its factors.
func rankSum(terms []ExprNode) []ExprNode {
	type ranked struct {
		key  float64
		term ExprNode
	}
	rs := make([]ranked, len(terms))
	for i, t := range terms {
		rs[i] = ranked{key: degree(t), term: t}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].key > rs[j].key })
	out := make([]ExprNode, len(terms))
	for i, r := range rs {
		out[i] = r.term
	}
	return out
}

func degree(t ExprNode) float64 {
	t = absNeg(t)
	if p, ok := t.(*NaryNode); ok && p.Op == OpProduct {
		best := -1.0
		for _, f := range p.Terms {
			best = math.Max(best, exponentRank(f))
		}
		return best
	}
	return exponentRank(t)
}

// exponentRank is the numeric exponent of t; symbolic exponents rank 0.
func exponentRank(t ExprNode) float64 {
	_, e := powerOf(t)
	switch c := e.(type) {
	case *IntNode:
		return float64(c.Val)
	case *FloatNode:
		if !math.IsNaN(c.Val) {
			return c.Val
		}
	}
	return 0
}

// rankProduct moves the first numeric constant to the front.
func rankProduct(terms []ExprNode) []ExprNode {
	for i, t := range terms {
		if !isConst(t) {
			continue
		}
		if i == 0 {
			return terms
		}
		out := make([]ExprNode, 0, len(terms))
		out = append(out, t)
		out = append(out, terms[:i]...)
		return append(out, terms[i+1:]...)
	}
	return terms
}

// collapse builds a flattened n-ary node, returning the identity for no
// terms and the term itself for one.
func collapse(op NaryOp, terms []ExprNode) ExprNode {
	terms = flatten(op, terms, nil)
	switch len(terms) {
	case 0:
		if op == OpProduct {
			return intc(1)
		}
		return intc(0)
	case 1:
		return terms[0]
	}
	return &NaryNode{Op: op, Terms: terms}
}
