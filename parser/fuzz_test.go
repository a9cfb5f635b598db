package parser_test

import (
	"testing"
	"unicode/utf8"

	"github.com/ardnew/sapling/parser"
)

// FuzzParse exercises the recursive-descent parser with arbitrary
// input, grounded on the teacher's lang/fuzz_test.go FuzzParser: parsing
// must never panic, and a successful parse must return a non-nil
// *ast.Code with no nil statements, regardless of how malformed the
// input is (a malformed input should instead surface as an *errs.Error,
// spec.md §7).
func FuzzParse(f *testing.F) {
	f.Add("x = 1")
	f.Add("func f(a, b) { return a + b }")
	f.Add("if x { y = 1 } else { y = 2 }")
	f.Add("while x < 10 { x += 1 }")
	f.Add("repeat { x += 1 } until x >= 10")
	f.Add("struct Point { x, y }")
	f.Add("enum Color { Red, Green, Blue }")
	f.Add(`import "other.sap"`)
	f.Add("a = [1, 2, 3]")
	f.Add(`a = {"key": "value"}`)
	f.Add("a = b.c.d")
	f.Add("a = (1 + 2) * 3 - 4 / 5 % 6")
	f.Add("a = b && c || !d")
	f.Add("a = new Point(1, 2)")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", input, r)
			}
		}()

		code, err := parser.Parse(input)
		if err != nil {
			if code != nil {
				t.Fatalf("Parse(%q) returned both an error and a non-nil tree", input)
			}

			return
		}

		if code == nil {
			t.Fatalf("Parse(%q) returned no error and a nil tree", input)
		}

		for i, stmt := range code.Stmts {
			if stmt == nil {
				t.Fatalf("Parse(%q) produced nil statement at index %d", input, i)
			}
		}
	})
}

// FuzzOperatorClosureExpr checks that chaining every binary and unary
// operator Sapling's grammar defines (spec.md §4.2) across a small
// operand set never panics the parser, whether or not the resulting
// expression is well-formed — the "operator closure" property promised
// by SPEC_FULL.md §A.4, extended from the lexer to the parser's
// precedence-climbing expression grammar.
func FuzzOperatorClosureExpr(f *testing.F) {
	operands := []string{"a", "1", "1.5", `"s"`, "true", "nil"}
	operators := []string{
		"+", "-", "*", "/", "%",
		"==", "!=", "<", ">", "<=", ">=",
		"&&", "||",
	}

	for _, lhs := range operands {
		for _, op := range operators {
			for _, rhs := range operands {
				f.Add("x = " + lhs + " " + op + " " + rhs)
			}
		}
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on operator expression %q: %v", input, r)
			}
		}()

		_, _ = parser.Parse(input)
	})
}
