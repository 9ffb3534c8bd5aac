package ast

import (
	"reflect"
	"testing"
)

// Expressions

func Test_ParseExpr_01(t *testing.T) {
	checkExpr(t, "x > 0", Binary{BinGt, Ident{"x"}, IntLit{0}})
}

func Test_ParseExpr_02(t *testing.T) {
	checkExpr(t, "x >= -5", Binary{BinGtEq, Ident{"x"}, IntLit{-5}})
}

func Test_ParseExpr_03(t *testing.T) {
	// "and" binds tighter than "or"
	checkExpr(t, "a and b or c",
		Binary{BinOr, Binary{BinAnd, Ident{"a"}, Ident{"b"}}, Ident{"c"}})
}

func Test_ParseExpr_04(t *testing.T) {
	checkExpr(t, "a or b and c",
		Binary{BinOr, Ident{"a"}, Binary{BinAnd, Ident{"b"}, Ident{"c"}}})
}

func Test_ParseExpr_05(t *testing.T) {
	checkExpr(t, "not(x == 0)", Unary{UnNot, Binary{BinEq, Ident{"x"}, IntLit{0}}})
}

func Test_ParseExpr_06(t *testing.T) {
	// "*" binds tighter than "+"
	checkExpr(t, "a + b * 2 > 0",
		Binary{BinGt,
			Binary{BinAdd, Ident{"a"}, Binary{BinMul, Ident{"b"}, IntLit{2}}},
			IntLit{0}})
}

func Test_ParseExpr_07(t *testing.T) {
	checkExpr(t, "(a + 1) > 0",
		Binary{BinGt, Binary{BinAdd, Ident{"a"}, IntLit{1}}, IntLit{0}})
}

func Test_ParseExpr_08(t *testing.T) {
	checkExpr(t, "scale < 1.5", Binary{BinLt, Ident{"scale"}, FloatLit{1.5}})
}

func Test_ParseExpr_09(t *testing.T) {
	checkExpr(t, "len(s) > 3",
		Binary{BinGt, Call{"len", []Expr{Ident{"s"}}}, IntLit{3}})
}

func Test_ParseExpr_10(t *testing.T) {
	checkExpr(t, "enabled == true", Binary{BinEq, Ident{"enabled"}, BoolLit{true}})
}

func Test_ParseExpr_11(t *testing.T) {
	checkExprRejected(t, "x >")
}

func Test_ParseExpr_12(t *testing.T) {
	checkExprRejected(t, "x > 0 junk")
}

func Test_ParseExpr_13(t *testing.T) {
	checkExprRejected(t, "(x > 0")
}

// Programs

func Test_ParseProgram_01(t *testing.T) {
	program := parse(t, `
		record Point {
			x: int where x >= 0;
			y: int where y >= 0;
		}`)
	//
	if len(program.Records) != 1 || len(program.Cells) != 0 {
		t.Fatal("expected exactly one record")
	}
	//
	record := program.Records[0]
	//
	if record.Name != "Point" || len(record.Fields) != 2 {
		t.Fatalf("malformed record: %v", record)
	}
	//
	if record.Fields[0].Name != "x" || record.Fields[0].Type != "int" {
		t.Errorf("malformed field: %v", record.Fields[0])
	}
	//
	if len(record.Fields[0].Where) != 1 {
		t.Errorf("expected one constraint on x")
	}
}

func Test_ParseProgram_02(t *testing.T) {
	program := parse(t, `
		cell divide(a: int, b: int) where b != 0 {
		}
		cell main() {
			divide(10, 2);
		}`)
	//
	if len(program.Cells) != 2 {
		t.Fatal("expected two cells")
	}
	//
	divide := program.Cell("divide")
	//
	if divide == nil || len(divide.Params) != 2 || len(divide.Where) != 1 {
		t.Fatalf("malformed cell: %v", divide)
	}
	//
	main := program.Cell("main")
	//
	if len(main.Body) != 1 {
		t.Fatal("expected one statement in main")
	}
	//
	call, ok := main.Body[0].(CallStmt)
	//
	if !ok || call.Call.Name != "divide" || len(call.Call.Args) != 2 {
		t.Errorf("malformed call: %v", main.Body[0])
	}
}

func Test_ParseProgram_03(t *testing.T) {
	program := parse(t, `
		cell fetch(url: string) uses io <= 3 {
			io("GET");
			io("GET");
		}`)
	//
	fetch := program.Cell("fetch")
	//
	if len(fetch.Uses) != 1 {
		t.Fatal("expected one effect clause")
	}
	//
	if fetch.Uses[0].Effect != "io" || fetch.Uses[0].Max != 3 {
		t.Errorf("malformed effect clause: %v", fetch.Uses[0])
	}
}

func Test_ParseProgram_04(t *testing.T) {
	program := parse(t, `
		cell check(x: int) {
			if x > 0 {
				positive(x);
			} else {
				negative(x);
			}
		}`)
	//
	body := program.Cell("check").Body
	//
	if len(body) != 1 {
		t.Fatal("expected one statement")
	}
	//
	branch, ok := body[0].(IfStmt)
	//
	if !ok || len(branch.Then) != 1 || len(branch.Else) != 1 {
		t.Fatalf("malformed branch: %v", body[0])
	}
	//
	if branch.Cond.String() != "x > 0" {
		t.Errorf("malformed condition: %s", branch.Cond)
	}
}

func Test_ParseProgram_05(t *testing.T) {
	// where clauses may carry several comma-separated constraints
	program := parse(t, `
		cell clamp(n: int) where n >= 0, n <= 100 {
		}`)
	//
	if len(program.Cell("clamp").Where) != 2 {
		t.Error("expected two precondition clauses")
	}
}

func Test_ParseProgram_06(t *testing.T) {
	// comments are skipped
	program := parse(t, `
		// a point on the plane
		record Point {
			x: int // abscissa
		}`)
	//
	if len(program.Records) != 1 {
		t.Error("expected one record")
	}
}

func Test_ParseProgram_07(t *testing.T) {
	checkProgramRejected(t, "record {")
}

func Test_ParseProgram_08(t *testing.T) {
	checkProgramRejected(t, "cell f() uses io >= 3 { }")
}

func Test_ParseProgram_09(t *testing.T) {
	checkProgramRejected(t, "frobnicate")
}

// Positions

func Test_ParsePos_01(t *testing.T) {
	program := parse(t, "record A {\n  x: int\n}")
	//
	field := program.Records[0].Fields[0]
	//
	if field.Pos.Line != 2 {
		t.Errorf("expected field on line 2, got %s", field.Pos)
	}
}

// Helpers

func parse(t *testing.T, input string) *Program {
	t.Helper()
	//
	program, err := ParseProgram(input)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	//
	return program
}

func checkExpr(t *testing.T, input string, expected Expr) {
	t.Helper()
	//
	actual, err := ParseExpr(input)
	if err != nil {
		t.Fatalf("parsing %q: %v", input, err)
	}
	//
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("%q parsed as %#v, expected %#v", input, actual, expected)
	}
}

func checkExprRejected(t *testing.T, input string) {
	t.Helper()
	//
	if expr, err := ParseExpr(input); err == nil {
		t.Errorf("expected %q to be rejected, got %s", input, expr)
	}
}

func checkProgramRejected(t *testing.T, input string) {
	t.Helper()
	//
	if _, err := ParseProgram(input); err == nil {
		t.Errorf("expected %q to be rejected", input)
	}
}
