package interpreter

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/parser"
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

func newTestInterpreter() (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewWithOptions(Options{Stdout: &out}), &out
}

// runSource parses and runs src, returning the printed lines.
func runSource(t *testing.T, src string) ([]string, error) {
	t.Helper()
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	interp, out := newTestInterpreter()
	runErr := interp.Run(program)
	return splitLines(out.String()), runErr
}

func mustRun(t *testing.T, src string) []string {
	t.Helper()
	lines, err := runSource(t, src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return lines
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func assertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected output %q, got %q", want, got)
	}
}

func TestPrintJoinsArguments(t *testing.T) {
	interp, out := newTestInterpreter()
	program := []*ast.Node{
		ast.Print(ast.Str("a"), ast.Num("1"), ast.Bool(true)),
		ast.Print(),
	}
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := out.String(); got != "a 1 s7i7\n\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestArithmeticFormatting(t *testing.T) {
	lines := mustRun(t, `
kteb(2 + 3);
kteb(5.5);
kteb(11 / 2);
kteb(6 / 3);
kteb(2 * 1.5);
kteb(10 - 12);
kteb(-4);
kteb(1 + 2 * 3);
kteb((1 + 2) * 3);
`)
	assertLines(t, lines, "5", "5.5", "5.500000", "2", "3", "-2", "-4", "7", "9")
}

func TestAdditionFallsBackToConcatenation(t *testing.T) {
	lines := mustRun(t, `
kteb("ab" + "cd");
kteb("3" + 4);
kteb("3a" + 4);
kteb(s7i7 + 1);
`)
	assertLines(t, lines, "abcd", "7", "3a4", "s7i71")
}

func TestEqualityIsTextual(t *testing.T) {
	lines := mustRun(t, `
kteb(3 == 3.0);
kteb("3" == 3);
kteb(6 / 2 == 3);
kteb(1 != 2);
kteb(s7i7 == "s7i7");
`)
	assertLines(t, lines, "ghalat", "s7i7", "s7i7", "s7i7", "s7i7")
}

func TestComparisonAndLogic(t *testing.T) {
	lines := mustRun(t, `
kteb(1 < 2, 2 <= 2, 3 > 4, 4 >= 5);
kteb(s7i7 w 0, 0 wla "x", ghalat wla "0.0", 1 w 2);
kteb("0.00" w 1);
`)
	assertLines(t, lines,
		"s7i7 s7i7 ghalat ghalat",
		"ghalat s7i7 ghalat s7i7",
		"s7i7",
	)
}

func TestLogicalOperatorsAreEager(t *testing.T) {
	lines := mustRun(t, `
dalla bump() { kteb("called"); rje3 1; }
dir r = ghalat w bump();
kteb(r);
`)
	assertLines(t, lines, "called", "ghalat")

	_, err := runSource(t, `kteb(s7i7 wla missing);`)
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "missing" {
		t.Fatalf("expected undefined variable error from right operand, got %v", err)
	}
}

func TestIfElseChain(t *testing.T) {
	src := `
dalla classify(n) {
  ila (n < 0) { rje3 "neg"; }
  wila (n == 0) { rje3 "zero"; }
  wila (n < 10) { rje3 "small"; }
  wla { rje3 "big"; }
}
kteb(classify(-1), classify(0), classify(5), classify(50));
`
	assertLines(t, mustRun(t, src), "neg zero small big")
}

func TestIfUsesTruthinessOfText(t *testing.T) {
	lines := mustRun(t, `
ila ("0.00") { kteb("a"); }
ila ("0.0") { kteb("b"); } wla { kteb("c"); }
ila ("") { kteb("d"); }
`)
	assertLines(t, lines, "a", "c")
}

func TestWhileLoop(t *testing.T) {
	lines := mustRun(t, `
dir i = 3;
ma7ad (i > 0) { kteb(i); i = i - 1; }
kteb("done", i);
`)
	assertLines(t, lines, "3", "2", "1", "done 0")
}

func TestForLoopIncrementIsEvaluated(t *testing.T) {
	lines := mustRun(t, `
kol (dir i = 0; i < 3; i++) { kteb(i); }
kteb(i);
`)
	assertLines(t, lines, "0", "1", "2", "3")
}

func TestForLoopWithAssignmentInit(t *testing.T) {
	lines := mustRun(t, `
dir total = 0;
kol (j = 1; j <= 4; j++) { total = total + j; }
kteb(total, j);
`)
	assertLines(t, lines, "10 5")
}

func TestForLoopRejectsStatementIncrement(t *testing.T) {
	interp, _ := newTestInterpreter()
	loop := ast.For(
		ast.VarDecl("i", ast.Num("0")),
		ast.Bin("<", ast.ID("i"), ast.Num("3")),
		ast.Assign("i", ast.Bin("+", ast.ID("i"), ast.Num("1"))),
		ast.Block(),
	)
	err := interp.Run([]*ast.Node{loop})
	var invalid *InvalidNodeError
	if !errors.As(err, &invalid) || invalid.Type != ast.NodeAssignment {
		t.Fatalf("expected invalid node error for assignment increment, got %v", err)
	}
}

func TestPostIncrement(t *testing.T) {
	lines := mustRun(t, `
dir x = 5;
dir y = x++;
kteb(y, x);
dir f = 2.5;
dir g = f++;
kteb(g, f);
`)
	assertLines(t, lines, "5 6", "2.500000 3")
}

func TestPostIncrementStoresTruncatedNumber(t *testing.T) {
	lines := mustRun(t, `
dir x = 2.5;
dir y = x++;
kteb(x);
kteb(x + 0);
kteb(x < 3.1);
`)
	assertLines(t, lines, "3", "3", "s7i7")
}

func TestComputedResultsFeedBackAsPrinted(t *testing.T) {
	lines := mustRun(t, `
dir t = 1 / 3;
kteb(t);
kteb(t * 3);
kteb(2 / 3 + 2 / 3);
`)
	assertLines(t, lines, "0.333333", "0.999999", "1.333334")
}

func TestExpressionStatementsAreSkipped(t *testing.T) {
	lines := mustRun(t, `
dalla f() { kteb("side"); }
f();
dir x = 1;
x++;
kteb(x);
dalla g() { f(); x++; rje3 x; }
kteb(g());
nope;
1 / 0;
`)
	assertLines(t, lines, "1", "1")
}

func TestEvaluateProgramStillEvaluatesTopLevelExpressions(t *testing.T) {
	interp, out := newTestInterpreter()
	program, err := parser.ParseSource(`
dalla f() { kteb("side"); rje3 7; }
dir x = 1;
x++;
f()
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	val, err := interp.EvaluateProgram(program)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if val == nil || val.Text() != "7" {
		t.Fatalf("expected 7, got %v", val)
	}
	if got := out.String(); got != "side\n" {
		t.Fatalf("stdout = %q", got)
	}
	if x, _ := interp.Environment().Lookup("x"); x.Text() != "2" {
		t.Fatalf("expected x incremented to 2, got %v", x)
	}
}

func TestPostIncrementRequiresIdentifier(t *testing.T) {
	interp, _ := newTestInterpreter()
	_, err := interp.EvaluateProgram([]*ast.Node{ast.PostInc(ast.Num("1"))})
	var invalid *InvalidNodeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid node error, got %v", err)
	}
}

func TestCallRestoresCallerVariables(t *testing.T) {
	lines := mustRun(t, `
dir x = 1;
dalla f() { x = 99; rje3 x + 1; }
dir r = f();
kteb(x, r);
`)
	assertLines(t, lines, "1 100")
}

func TestCallSeesCallerLocals(t *testing.T) {
	lines := mustRun(t, `
dalla show() { rje3 secret; }
dalla outer() { dir secret = "visible"; rje3 show(); }
kteb(outer());
`)
	assertLines(t, lines, "visible")
}

func TestCallParametersVanishAfterReturn(t *testing.T) {
	_, err := runSource(t, `
dalla f(p) { rje3 p; }
dir r = f(1);
kteb(p);
`)
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "p" {
		t.Fatalf("expected parameter to be unbound after call, got %v", err)
	}
}

func TestCallArgumentBinding(t *testing.T) {
	lines := mustRun(t, `
dalla first(a, b) { rje3 a; }
kteb(first(1, 2, 3));
`)
	assertLines(t, lines, "1")

	lines = mustRun(t, `
dalla f(a) { rje3 a; }
kteb(f(1, nope));
kteb(f(2, 1 / 0, missing()));
`)
	assertLines(t, lines, "1", "2")

	_, err := runSource(t, `
dalla second(a, b) { rje3 b; }
kteb(second(1));
`)
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "b" {
		t.Fatalf("expected missing argument to be unbound, got %v", err)
	}
}

func TestCallArgumentsSeePreCallStore(t *testing.T) {
	lines := mustRun(t, `
dir a = "outer";
dalla f(a, b) { rje3 b; }
kteb(f("inner", a));
kteb(a);
`)
	assertLines(t, lines, "outer", "outer")
}

func TestCallDefaultsToZero(t *testing.T) {
	lines := mustRun(t, `
dalla nothing() { dir unused = 1; }
dalla bare() { rje3; }
kteb(nothing(), bare());
`)
	assertLines(t, lines, "0 0")
}

func TestReturnStopsEnclosingLoops(t *testing.T) {
	lines := mustRun(t, `
dalla find() {
  dir i = 0;
  ma7ad (s7i7) {
    kol (dir j = 0; j < 10; j++) {
      ila (j == 3) { rje3 i + j; }
    }
    i++;
  }
}
kteb(find());
`)
	assertLines(t, lines, "3")
}

func TestRecursion(t *testing.T) {
	lines := mustRun(t, `
dalla fact(n) {
  ila (n <= 1) { rje3 1; }
  rje3 n * fact(n - 1);
}
dalla fib(n) {
  ila (n < 2) { rje3 n; }
  rje3 fib(n - 1) + fib(n - 2);
}
kteb(fact(5), fib(10));
`)
	assertLines(t, lines, "120 55")
}

func TestFunctionsDeclaredInBodiesPersist(t *testing.T) {
	lines := mustRun(t, `
dalla install() { dalla helper() { rje3 "helped"; } }
dir done = install();
kteb(helper());
`)
	assertLines(t, lines, "helped")
}

func TestForwardReferenceFails(t *testing.T) {
	lines, err := runSource(t, `
kteb("before");
dir r = later();
dalla later() { kteb("never"); }
`)
	var undefined *UndefinedFunctionError
	if !errors.As(err, &undefined) || undefined.Name != "later" {
		t.Fatalf("expected undefined function error, got %v", err)
	}
	if err.Error() != "Undefined function 'later'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	assertLines(t, lines, "before")
}

func TestRuntimeFaults(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		target interface{}
		msg    string
	}{
		{"division by zero", `kteb(5 / 0);`, new(*DivisionByZeroError), "Division by zero"},
		{"undefined variable", `kteb(nope);`, new(*UndefinedVariableError), "Undefined variable 'nope'"},
		{"subtraction of text", `kteb("a" - 1);`, new(*ConversionError), "Invalid numeric operand 'a' for '-'"},
		{"comparison of text", `kteb(1 < "x");`, new(*ConversionError), "Invalid numeric operand 'x' for '<'"},
		{"negating text", `kteb(-"x");`, new(*ConversionError), "Invalid numeric operand 'x' for '-'"},
		{"trailing garbage", `kteb("3a" * 2);`, new(*ConversionError), "Invalid numeric operand '3a' for '*'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runSource(t, tc.src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.As(err, tc.target) {
				t.Fatalf("unexpected error type %T", err)
			}
			if !errors.Is(err, ErrRuntime) {
				t.Fatalf("expected error to wrap ErrRuntime")
			}
			if err.Error() != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, err.Error())
			}
		})
	}
}

func TestFaultStopsOutput(t *testing.T) {
	lines, err := runSource(t, `
kteb("one");
kteb(1 / 0);
kteb("two");
`)
	if err == nil {
		t.Fatalf("expected division fault")
	}
	assertLines(t, lines, "one")
}

func TestTopLevelReturnStopsQuietly(t *testing.T) {
	lines := mustRun(t, `
kteb("a");
rje3 5;
kteb("b");
`)
	assertLines(t, lines, "a")
}

func TestCallDepthLimit(t *testing.T) {
	program, err := parser.ParseSource(`
dalla loop(n) { rje3 loop(n + 1); }
dir r = loop(0);
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var out bytes.Buffer
	interp := NewWithOptions(Options{Stdout: &out, MaxCallDepth: 50})
	err = interp.Run(program)
	var depthErr *CallDepthError
	if !errors.As(err, &depthErr) || depthErr.Limit != 50 || depthErr.Function != "loop" {
		t.Fatalf("expected call depth error, got %v", err)
	}
	if interp.depth != 0 {
		t.Fatalf("depth not unwound: %d", interp.depth)
	}
}

func TestCallRestoresStoreOnError(t *testing.T) {
	interp, _ := newTestInterpreter()
	program, err := parser.ParseSource(`
dir x = 1;
dalla broken() { x = 2; rje3 1 / 0; }
dir r = broken();
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := interp.Run(program); err == nil {
		t.Fatalf("expected fault")
	}
	val, ok := interp.Environment().Lookup("x")
	if !ok || val.Text() != "1" {
		t.Fatalf("expected x restored to 1, got %v", val)
	}
}

func TestEvaluateProgramKeepsStateAndReturnsLastValue(t *testing.T) {
	interp, _ := newTestInterpreter()
	first, err := parser.ParseSource(`dir x = 2;`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	val, err := interp.EvaluateProgram(first)
	if err != nil || val != nil {
		t.Fatalf("declaration should yield no value, got %v, %v", val, err)
	}
	second, err := parser.ParseSource(`x * 21`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	val, err = interp.EvaluateProgram(second)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if num, ok := val.(runtime.NumberValue); !ok || num.Text() != "42" {
		t.Fatalf("expected 42, got %#v", val)
	}

	interp.Reset()
	if _, ok := interp.Environment().Lookup("x"); ok {
		t.Fatalf("Reset kept variables")
	}
}

func TestMissingChildrenAreFaults(t *testing.T) {
	interp, _ := newTestInterpreter()
	cases := []*ast.Node{
		{Type: ast.NodeVarDecl, Value: "x"},
		{Type: ast.NodePrint, Children: []*ast.Node{{Type: ast.NodeBinaryOp, Op: "+", Children: []*ast.Node{ast.Num("1")}}}},
		{Type: ast.NodeWhile, Children: []*ast.Node{ast.Bool(false)}},
		{Type: ast.NodeFunctionDecl, Value: "f"},
		nil,
	}
	for _, node := range cases {
		err := interp.Run([]*ast.Node{node})
		var invalid *InvalidNodeError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected invalid node error for %#v, got %v", node, err)
		}
	}
}

func TestUnknownOperator(t *testing.T) {
	interp, _ := newTestInterpreter()
	_, err := interp.EvaluateProgram([]*ast.Node{ast.Bin("%", ast.Num("1"), ast.Num("2"))})
	if err == nil || err.Error() != "unknown operator '%'" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	interp := New()
	if interp.stdout != os.Stdout {
		t.Fatalf("expected os.Stdout by default")
	}
	if interp.maxCallDepth != DefaultMaxCallDepth {
		t.Fatalf("maxCallDepth = %d", interp.maxCallDepth)
	}
	if unlimited := NewWithOptions(Options{MaxCallDepth: -1}); unlimited.maxCallDepth != -1 {
		t.Fatalf("negative depth should disable the limit")
	}
}
