package evaluator

import (
	"strings"
	"testing"

	"github.com/eddndev/achronyme/internal/parser"
	"github.com/eddndev/achronyme/internal/value"
)

// run parses src and evaluates it against a fresh global environment,
// capturing print() output, following the teacher's parse-then-Eval
// integration test shape (internal/interp/builtins_core_test.go).
func run(t *testing.T, src string) (value.Value, string) {
	t.Helper()
	p := parser.New(src, "test.ach")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors()[0].Message)
	}
	var buf strings.Builder
	e := New()
	e.Output = &buf
	env := e.NewGlobalEnvironment()
	result, err := e.EvalProgram(prog, env)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return result, buf.String()
}

// runErr parses and evaluates src, expecting an error, and returns it.
func runErr(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(src, "test.ach")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors()[0].Message)
	}
	e := New()
	env := e.NewGlobalEnvironment()
	_, err := e.EvalProgram(prog, env)
	if err == nil {
		t.Fatalf("expected an error for %q, got none", src)
	}
	return err
}

func TestArithmeticAndPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"addition", "1 + 2", 3},
		{"precedence", "1 + 2 * 3", 7},
		{"power right-assoc", "2 ^ 3 ^ 2", 512},
		{"modulo", "7 % 3", 1},
		{"unary negation", "-(3 + 4)", -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := run(t, tt.input)
			n, ok := v.(value.Number)
			if !ok {
				t.Fatalf("expected Number, got %T", v)
			}
			if n.Val != tt.want {
				t.Errorf("got %v, want %v", n.Val, tt.want)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	err := runErr(t, "1 / 0")
	ve, ok := err.(*value.Error)
	if !ok {
		t.Fatalf("expected *value.Error, got %T", err)
	}
	if ve.Kind != value.KindZeroDivision {
		t.Errorf("got kind %q, want %q", ve.Kind, value.KindZeroDivision)
	}
}

func TestStringConcatenation(t *testing.T) {
	v, _ := run(t, `"foo" + "bar"`)
	s, ok := v.(value.Str)
	if !ok {
		t.Fatalf("expected Str, got %T", v)
	}
	if s.Val != "foobar" {
		t.Errorf("got %q, want %q", s.Val, "foobar")
	}
}

func TestLetAndMutBindings(t *testing.T) {
	_, out := run(t, `
let x = 10
mut y = 5
y = y + x
print(y)
`)
	if out != "15\n" {
		t.Errorf("got %q, want %q", out, "15\n")
	}
}

func TestRebindingClonesRecordsByValue(t *testing.T) {
	// spec §8: a plain rebinding of a Record is an independent copy unless
	// reached through a mutable reference cell — mutating the new binding
	// must not be observable through the original one.
	_, out := run(t, `
let r = { mut v: 0 }
let r2 = r
r2.v = 5
print(r.v)
print(r2.v)
`)
	if out != "0\n5\n" {
		t.Errorf("got %q, want %q", out, "0\n5\n")
	}
}

func TestFunctionArgumentsAreClonedNotAliased(t *testing.T) {
	_, out := run(t, `
let r = { mut v: 1 }
let bump = (x) => do {
  x.v = 99
  return x.v
}
print(bump(r))
print(r.v)
`)
	if out != "99\n1\n" {
		t.Errorf("got %q, want %q", out, "99\n1\n")
	}
}

func TestImmutableAssignmentFails(t *testing.T) {
	err := runErr(t, `
let x = 1
x = 2
`)
	ve, ok := err.(*value.Error)
	if !ok {
		t.Fatalf("expected *value.Error, got %T", err)
	}
	if ve.Kind != value.KindMutabilityError {
		t.Errorf("got kind %q, want %q", ve.Kind, value.KindMutabilityError)
	}
}

func TestIfCallForm(t *testing.T) {
	v, _ := run(t, `if(true, 1, 2)`)
	n := v.(value.Number)
	if n.Val != 1 {
		t.Errorf("got %v, want 1", n.Val)
	}
	v, _ = run(t, `if(false, 1, 2)`)
	n = v.(value.Number)
	if n.Val != 2 {
		t.Errorf("got %v, want 2", n.Val)
	}
}

func TestPiecewise(t *testing.T) {
	v, _ := run(t, `piecewise([false, 1], [true, 2], 3)`)
	n := v.(value.Number)
	if n.Val != 2 {
		t.Errorf("got %v, want 2", n.Val)
	}
}

func TestUserDefinedFunctionAndRecursion(t *testing.T) {
	_, out := run(t, `
let fact = (n) => if(n <= 1, 1, n * fact(n - 1))
print(fact(5))
`)
	if out != "120\n" {
		t.Errorf("got %q, want %q", out, "120\n")
	}
}

func TestDeepTailRecursionWithinBudget(t *testing.T) {
	_, out := run(t, `
let loop = (n, acc) => if(n <= 0, acc, loop(n - 1, acc + 1))
print(loop(100000, 0))
`)
	if out != "100000\n" {
		t.Errorf("got %q, want %q", out, "100000\n")
	}
}

func TestWhileLoop(t *testing.T) {
	_, out := run(t, `
mut i = 0
mut total = 0
while (i < 5) {
  total = total + i
  i = i + 1
}
print(total)
`)
	if out != "10\n" {
		t.Errorf("got %q, want %q", out, "10\n")
	}
}

func TestForLoop(t *testing.T) {
	_, out := run(t, `
mut total = 0
for (x in [1, 2, 3, 4]) {
  total = total + x
}
print(total)
`)
	if out != "10\n" {
		t.Errorf("got %q, want %q", out, "10\n")
	}
}

func TestTryCatch(t *testing.T) {
	_, out := run(t, `
try {
  throw "boom"
} catch (e) {
  print(e.message)
}
`)
	if out != "boom\n" {
		t.Errorf("got %q, want %q", out, "boom\n")
	}
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"match 1 { 1 => \"one\", _ => \"other\" }", "one\n"},
		{"match 2 { 1 => \"one\", _ => \"other\" }", "other\n"},
	}
	for _, tt := range tests {
		_, out := run(t, `print(`+tt.input+`)`)
		if out != tt.want {
			t.Errorf("for %q: got %q, want %q", tt.input, out, tt.want)
		}
	}
}

func TestGeneratorYieldsInOrder(t *testing.T) {
	_, out := run(t, `
let gen = generate {
  yield 1
  yield 2
  yield 3
}
for (v in gen) {
  print(v)
}
`)
	if out != "1\n2\n3\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n3\n")
	}
}

func TestCollectionBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"len", `print(len([1, 2, 3]))`, "3\n"},
		{"sum", `print(sum([1, 2, 3]))`, "6\n"},
		{"mean", `print(mean([2, 4, 6]))`, "4\n"},
		{"map", `print(map([1, 2, 3], (x) => x * 2))`, "[2, 4, 6]\n"},
		{"filter", `print(filter([1, 2, 3, 4], (x) => x % 2 == 0))`, "[2, 4]\n"},
		{"reduce", `print(reduce([1, 2, 3, 4], (acc, x) => acc + x, 0))`, "10\n"},
		{"any true", `print(any([1, 2, 3], (x) => x > 2))`, "true\n"},
		{"all false", `print(all([1, 2, 3], (x) => x > 2))`, "false\n"},
		{"find", `print(find([1, 2, 3], (x) => x > 1))`, "2\n"},
		{"findIndex", `print(findIndex([1, 2, 3], (x) => x > 1))`, "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := run(t, tt.input)
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestStringBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"upper", `print(upper("abc"))`, "ABC\n"},
		{"lower", `print(lower("ABC"))`, "abc\n"},
		{"split/join", `print(join(split("a,b,c", ","), "-"))`, "a-b-c\n"},
		{"starts_with", `print(starts_with("hello", "he"))`, "true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := run(t, tt.input)
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTensorBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dot", `print(dot([1, 2, 3], [4, 5, 6]))`, "32\n"},
		{"norm", `print(norm([3, 4]))`, "5\n"},
		{"transpose", `print(transpose([[1, 2], [3, 4]]))`, "[[1, 3], [2, 4]]\n"},
		{"det", `print(det([[1, 2], [3, 4]]))`, "-2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := run(t, tt.input)
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestComplexTensorArithmetic(t *testing.T) {
	// Checks values with a numeric tolerance (rather than comparing printed
	// strings) since gonum's FFT can introduce floating-point noise below
	// the precision formatFloat would hide.
	const tol = 1e-9

	tests := []struct {
		name string
		expr string
		want []float64
	}{
		{"tensor plus itself doubles magnitude", `fft_mag(fft([4, 0, 0, 0]) + fft([4, 0, 0, 0]))`, []float64{8, 8, 8, 8}},
		{"tensor minus itself is zero", `fft_mag(fft([4, 0, 0, 0]) - fft([4, 0, 0, 0]))`, []float64{0, 0, 0, 0}},
		{"scalar times tensor", `fft_mag(3 * fft([4, 0, 0, 0]))`, []float64{12, 12, 12, 12}},
		{"tensor times scalar", `fft_mag(fft([4, 0, 0, 0]) * 3)`, []float64{12, 12, 12, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := run(t, tt.expr)
			rt, ok := result.(*value.RealTensor)
			if !ok {
				t.Fatalf("got %T, want *value.RealTensor", result)
			}
			data := rt.Data()
			if len(data) != len(tt.want) {
				t.Fatalf("got %d elements, want %d", len(data), len(tt.want))
			}
			for i, w := range tt.want {
				if diff := data[i] - w; diff < -tol || diff > tol {
					t.Errorf("element %d: got %v, want %v", i, data[i], w)
				}
			}
		})
	}
}

func TestNumericalRootFinders(t *testing.T) {
	_, out := run(t, `print(newton((x) => x * x - 2, 1, 1e-9))`)
	got := strings.TrimSuffix(out, "\n")
	if !strings.HasPrefix(got, "1.41421") {
		t.Errorf("newton(sqrt 2) got %q, want prefix 1.41421", got)
	}
}

func TestLinearSolveOverload(t *testing.T) {
	v, _ := run(t, `solve([[2, 0], [0, 2]], [4, 6])`)
	rt, ok := v.(*value.RealTensor)
	if !ok {
		t.Fatalf("expected RealTensor, got %T", v)
	}
	data := rt.Real.Data()
	if len(data) != 2 || data[0] != 2 || data[1] != 3 {
		t.Errorf("got %v, want [2 3]", data)
	}
}

func TestGraphBuiltins(t *testing.T) {
	_, out := run(t, `
let g = network(["a" -> "b", "b" -> "c"])
print(bfs(g, "a"))
`)
	if out != "[a, b, c]\n" {
		t.Errorf("got %q, want %q", out, "[a, b, c]\n")
	}
}

func TestLinProgBuiltin(t *testing.T) {
	_, out := run(t, `
let r = linprog([3, 5], [[1, 0], [0, 2], [3, 2]], [4, 12, 18], "max")
print(objective_value(r))
`)
	if out != "36\n" {
		t.Errorf("got %q, want %q", out, "36\n")
	}
}
