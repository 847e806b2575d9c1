package types

import (
	"testing"

	"github.com/ava12/notation/internal/test"
)

func defaultHierarchy(t *testing.T) *Hierarchy {
	h, e := NewHierarchy()
	test.ExpectSuccess(t, e)
	return h
}

func TestSupertypes(t *testing.T) {
	h := defaultHierarchy(t)
	samples := []struct {
		a, b           string
		super, orEqual bool
	}{
		{"disjunctexpr", "conjunctexpr", true, true},
		{"sumexpr", "sumexpr", false, true},
		{"expression", "atomicnumberexpr", true, true},
		{"numberexpr", "factorexpr", true, true},
		{"factorexpr", "sumexpr", false, false},
		{"sumexpr", "conjunctexpr", false, false},
		{"expression", "expression", false, true},
	}

	for i, s := range samples {
		test.Assert(t, h.IsSupertype(s.a, s.b) == s.super, "sample #%d: IsSupertype(%s, %s) != %v", i, s.a, s.b, s.super)
		test.Assert(t, h.IsSupertypeOrEqual(s.a, s.b) == s.orEqual, "sample #%d: IsSupertypeOrEqual(%s, %s) != %v", i, s.a, s.b, s.orEqual)
	}
}

func TestIrreflexive(t *testing.T) {
	h := defaultHierarchy(t)
	for _, c := range h.Chains() {
		for _, name := range c {
			test.Assert(t, !h.IsSupertype(name, name), "%s is its own supertype", name)
			test.Assert(t, h.IsSupertypeOrEqual(name, name), "%s is not supertype-or-equal of itself", name)
		}
	}
}

func TestAtomic(t *testing.T) {
	h := defaultHierarchy(t)
	test.ExpectBool(t, true, h.IsAtomic("atomicnumberexpr"))
	test.ExpectBool(t, true, h.IsAtomic("atomicpropexpr"))
	test.ExpectBool(t, false, h.IsAtomic("sumexpr"))
	test.ExpectBool(t, false, h.IsAtomic("unknown"))
	test.ExpectBool(t, true, h.Has("sumexpr"))
	test.ExpectBool(t, false, h.Has("addition"))
}

func TestLowestSubtype(t *testing.T) {
	h := defaultHierarchy(t)
	test.ExpectString(t, "atomicnumberexpr", h.LowestSubtype("sumexpr"))
	test.ExpectString(t, "atomicnumberexpr", h.LowestSubtype("atomicnumberexpr"))
	test.ExpectString(t, "atomicpropexpr", h.LowestSubtype("disjunctexpr"))
	test.ExpectString(t, "expression", h.LowestSubtype("expression"))
	test.ExpectString(t, "foo", h.LowestSubtype("foo"))
}

func TestCustomChains(t *testing.T) {
	h, e := NewHierarchy([]string{"sum", "product", "factor", "atomicnumber"})
	test.ExpectSuccess(t, e)
	test.ExpectBool(t, true, h.IsSupertype("sum", "atomicnumber"))
	test.ExpectBool(t, false, h.IsSupertype("atomicnumber", "sum"))
	test.ExpectInt(t, 0, len(h.AtomicExpressions()))

	h, e = NewHierarchy([]string{"expression", "a", "b"}, []string{"expression", "c"}, []string{"x", "b"})
	test.ExpectSuccess(t, e)
	test.ExpectBool(t, true, h.IsSupertype("x", "b"))
	test.ExpectString(t, "b", h.LowestSubtype("b"))
	test.ExpectString(t, "expression", h.LowestSubtype("expression"))
	aes := h.AtomicExpressions()
	test.ExpectInt(t, 2, len(aes))
	test.Expect(t, aes[0] == AtomicExpression{"b", "a"}, AtomicExpression{"b", "a"}, aes[0])
	test.Expect(t, aes[1] == AtomicExpression{"c", "expression"}, AtomicExpression{"c", "expression"}, aes[1])
	subs := h.Subtypes("expression")
	test.ExpectInt(t, 2, len(subs))
}

func TestChainErrors(t *testing.T) {
	_, e := NewHierarchy([]string{})
	test.ExpectErrorCode(t, EmptyChainError, e)

	_, e = NewHierarchy([]string{"a", ""})
	test.ExpectErrorCode(t, EmptyChainError, e)

	_, e = NewHierarchy([]string{"a", "b"}, []string{"b", "c", "a"})
	test.ExpectErrorCode(t, CyclicChainError, e)
}
