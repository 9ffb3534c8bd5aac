package counterexample

import (
	"strings"
	"testing"

	"github.com/cella-lang/go-cella/pkg/ast"
	"github.com/cella-lang/go-cella/pkg/constraint"
)

// Parsing

func Test_Parse_01(t *testing.T) {
	parsed := parseText(t, "x > 0")
	//
	cmp, ok := parsed.(Comparison)
	if !ok || cmp.Left != "x" || cmp.Op != ">" || cmp.Right != "0" {
		t.Errorf("got %#v", parsed)
	}
}

func Test_Parse_02(t *testing.T) {
	parsed := parseText(t, "a >= 0 and a < 10")
	//
	if _, ok := parsed.(And); !ok {
		t.Errorf("expected a conjunction, got %#v", parsed)
	}
}

func Test_Parse_03(t *testing.T) {
	parsed := parseText(t, "x < 0 or x > 10")
	//
	if _, ok := parsed.(Or); !ok {
		t.Errorf("expected a disjunction, got %#v", parsed)
	}
}

func Test_Parse_04(t *testing.T) {
	parsed := parseText(t, "not(x == 5)")
	//
	neg, ok := parsed.(Not)
	if !ok {
		t.Fatalf("expected a negation, got %#v", parsed)
	}
	//
	if _, ok := neg.Inner.(Comparison); !ok {
		t.Errorf("expected a negated comparison, got %#v", neg.Inner)
	}
}

func Test_Parse_05(t *testing.T) {
	parsed := parseText(t, "len(name) > 3")
	//
	call, ok := parsed.(FuncCall)
	if !ok || call.Name != "len" || call.Arg != "name" || call.Op != ">" || call.Value != "3" {
		t.Errorf("got %#v", parsed)
	}
}

func Test_Parse_06(t *testing.T) {
	// arithmetic on the left is outside the grammar, not an error
	if _, ok := ParseSimpleConstraint("x + 1 > 0"); ok {
		t.Error("arithmetic must not parse")
	}
}

func Test_Parse_07(t *testing.T) {
	if _, ok := ParseSimpleConstraint(""); ok {
		t.Error("empty text must not parse")
	}
}

func Test_Parse_08(t *testing.T) {
	// redundant outer parentheses are stripped
	parsed := parseText(t, "(x > 0)")
	//
	if _, ok := parsed.(Comparison); !ok {
		t.Errorf("got %#v", parsed)
	}
}

// Boundary values

func Test_Boundary_01(t *testing.T) {
	checkWitness(t, "x > 0", "x", 0)
}

func Test_Boundary_02(t *testing.T) {
	checkWitness(t, "x >= 0", "x", -1)
}

func Test_Boundary_03(t *testing.T) {
	checkWitness(t, "x < 10", "x", 10)
}

func Test_Boundary_04(t *testing.T) {
	checkWitness(t, "x <= 10", "x", 11)
}

func Test_Boundary_05(t *testing.T) {
	checkWitness(t, "x == 5", "x", 6)
}

func Test_Boundary_06(t *testing.T) {
	checkWitness(t, "x != 5", "x", 5)
}

func Test_Boundary_07(t *testing.T) {
	// literal on the left is flipped first
	checkWitness(t, "5 > x", "x", 5)
}

func Test_Boundary_08(t *testing.T) {
	// a range violator steps just below the feasible interval
	checkWitness(t, "x >= 2 and x <= 8", "x", 1)
}

func Test_Boundary_09(t *testing.T) {
	// with no lower bound, step just above instead
	checkWitness(t, "x < 5 and x <= 3", "x", 4)
}

func Test_Boundary_10(t *testing.T) {
	// a violated negation needs a satisfying inner value
	checkWitness(t, "not(x > 10)", "x", 11)
}

func Test_Boundary_11(t *testing.T) {
	// the left disjunct drives the witness
	checkWitness(t, "x > 0 or x < -10", "x", 0)
}

// Non-integer witnesses

func Test_Witness_01(t *testing.T) {
	ce := generate(t, "enabled == true")
	//
	value, ok := ce.Bindings[0].Value.(BoolValue)
	if !ok || value.Value {
		t.Errorf("expected enabled = false, got %v", ce.Bindings)
	}
}

func Test_Witness_02(t *testing.T) {
	ce := generate(t, "len(name) > 3")
	//
	value, ok := ce.Bindings[0].Value.(StringValue)
	if !ok || len(value.Value) != 3 {
		t.Errorf("expected a string of length 3, got %v", ce.Bindings)
	}
}

func Test_Witness_03(t *testing.T) {
	// violating lengths clamp at zero
	ce := generate(t, "len(name) >= 0")
	//
	value, ok := ce.Bindings[0].Value.(StringValue)
	if !ok || len(value.Value) != 0 {
		t.Errorf("expected the empty string, got %v", ce.Bindings)
	}
}

func Test_Witness_04(t *testing.T) {
	// 0 and 1 are integer bounds, never boolean literals
	ce := generate(t, "x != 1")
	//
	value, ok := ce.Bindings[0].Value.(IntValue)
	if !ok || value.Value != 1 {
		t.Errorf("expected x = 1, got %v", ce.Bindings)
	}
}

// Refusals

func Test_Refuse_01(t *testing.T) {
	// an unviolated constraint has no counter-example
	if _, ok := GenerateCounterexample("x > 0", nil, false); ok {
		t.Error("no witness exists for a satisfied constraint")
	}
}

func Test_Refuse_02(t *testing.T) {
	if _, ok := GenerateCounterexample("x * y > 0", nil, true); ok {
		t.Error("arithmetic constraints are beyond the grammar")
	}
}

func Test_Refuse_03(t *testing.T) {
	// witnesses must bind the variables in scope
	if _, ok := GenerateCounterexample("x > 0", []string{"y"}, true); ok {
		t.Error("a witness for x explains nothing about y")
	}
}

// The witness genuinely falsifies the constraint when substituted back.

func Test_RoundTrip_01(t *testing.T) {
	checkRoundTrip(t, "x > 0")
}

func Test_RoundTrip_02(t *testing.T) {
	checkRoundTrip(t, "x >= 2 and x <= 8")
}

func Test_RoundTrip_03(t *testing.T) {
	checkRoundTrip(t, "not(x > 10)")
}

func Test_RoundTrip_04(t *testing.T) {
	checkRoundTrip(t, "x != 5")
}

// Formatting

func Test_Format_01(t *testing.T) {
	ce := generate(t, "x > 0")
	short := FormatCounterexampleShort(ce)
	//
	if !strings.Contains(short, "x = 0") || !strings.Contains(short, "x > 0") {
		t.Errorf("unhelpful rendering: %s", short)
	}
}

func Test_Format_02(t *testing.T) {
	ce := generate(t, "x > 0")
	full := FormatCounterexample(ce)
	//
	if !strings.Contains(full, "x = 0") || !strings.Contains(full, "counter-example") {
		t.Errorf("unhelpful rendering: %s", full)
	}
}

// Helpers

func parseText(t *testing.T, text string) ParsedConstraint {
	t.Helper()
	//
	parsed, ok := ParseSimpleConstraint(text)
	if !ok {
		t.Fatalf("parsing %q failed", text)
	}
	//
	return parsed
}

func generate(t *testing.T, text string) *CounterExample {
	t.Helper()
	//
	ce, ok := GenerateCounterexample(text, nil, true)
	if !ok {
		t.Fatalf("no counter-example for %q", text)
	}
	//
	return ce
}

func checkWitness(t *testing.T, text string, name string, expected int64) {
	t.Helper()
	//
	ce := generate(t, text)
	//
	for _, binding := range ce.Bindings {
		if binding.Name != name || binding.Role == RoleBound {
			continue
		}
		//
		value, ok := binding.Value.(IntValue)
		if !ok || value.Value != expected {
			t.Errorf("%q: witness %s = %s, expected %d", text, name, binding.Value.String(), expected)
		}
		//
		return
	}
	//
	t.Errorf("%q: no witness bound for %s", text, name)
}

// checkRoundTrip substitutes the synthesized witness back into the constraint
// and confirms it evaluates to false.
func checkRoundTrip(t *testing.T, text string) {
	t.Helper()
	//
	ce := generate(t, text)
	//
	expr, err := ast.ParseExpr(text)
	if err != nil {
		t.Fatalf("parsing %q: %v", text, err)
	}
	//
	lowered, err := constraint.LowerExpr(expr)
	if err != nil {
		t.Fatalf("lowering %q: %v", text, err)
	}
	//
	for _, binding := range ce.Bindings {
		if value, ok := binding.Value.(IntValue); ok && binding.Role != RoleBound {
			lowered = lowered.SubstituteInt(binding.Name, value.Value)
		}
	}
	//
	holds, err := lowered.Eval()
	if err != nil {
		t.Fatalf("evaluating %q: %v", text, err)
	}
	//
	if holds {
		t.Errorf("witness %v fails to falsify %q", ce.Bindings, text)
	}
}
