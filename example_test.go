package notation_test

import (
	"fmt"

	"github.com/ava12/notation/converter"
	"github.com/ava12/notation/registry"
)

func Example() {
	c, e := converter.New(converter.Options{})
	if e != nil {
		panic(e)
	}

	concepts := []struct{ name, parent, pattern string }{
		{"addition", "sumexpr", "(+ sumexpr productexpr)"},
		{"multiplication", "productexpr", "(* productexpr factorexpr)"},
	}
	e = c.AddConcept("number", "atomicnumberexpr", registry.Terminal(`\d+`))
	for _, cn := range concepts {
		if e == nil {
			e = c.AddConcept(cn.name, cn.parent, registry.Putdown(cn.pattern))
		}
	}
	if e == nil {
		e = c.AddLanguage("infix", []string{"(", ")"}, nil, converter.LanguageOptions{})
	}
	if e == nil {
		e = c.AddNotation("infix", "addition", "A + B", registry.NotationOptions{})
	}
	if e == nil {
		e = c.AddNotation("infix", "multiplication", "A * B", registry.NotationOptions{})
	}
	if e != nil {
		panic(e)
	}

	for _, text := range []string{"1 + 2 * 3", "(1 + 2) * 3"} {
		res, ok, e := c.Convert("infix", "putdown", text)
		fmt.Println(res, ok, e)
	}

	res, _, _ := c.Convert("putdown", "infix", "(* (+ 1 2) 3)")
	fmt.Println(res)

	res, _, _ = c.Convert("infix", "putdown", "1 +")
	fmt.Printf("%q\n", res)

	// Output:
	// (+ 1 (* 2 3)) true <nil>
	// (* (+ 1 2) 3) true <nil>
	// (1 + 2) * 3
	// ""
}
