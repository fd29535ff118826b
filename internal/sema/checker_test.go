package sema

import (
	"testing"

	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/parser"
	"nust/internal/types"
)

func checkSource(t *testing.T, src string) (*ast.Program, bool, *diag.Bag) {
	t.Helper()
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bag := diag.NewBag(32)
	ok := Check(program, diag.BagReporter{Bag: bag})
	return program, ok, bag
}

func TestCheckValidPrograms(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"literals and arithmetic", `fn main() { let x: i32 = 1 + 2 * 3; }`},
		{"mutable assignment", `fn main() { let mut x: i32 = 1; x = x + 1; }`},
		{"assignment is an expression", `fn main() { let mut x: i32 = 0; let y: i32 = x = 5; }`},
		{"if else", `fn main() { if 1 < 2 { let a: i32 = 1; } else { let b: i32 = 2; } }`},
		{"while", `fn main() { let mut i: i32 = 0; while i < 10 { i = i + 1; } }`},
		{"call with args", `fn add(a: i32, b: i32) -> i32 { a + b } fn main() { add(1, 2); }`},
		{"forward call", `fn main() { later(); } fn later() {}`},
		{"shared borrow", `fn main() { let x: i32 = 1; let r: &i32 = &x; }`},
		{"mut borrow", `fn main() { let mut x: i32 = 1; let r: &mut i32 = &mut x; }`},
		{"mut ref decays to shared", `fn main() { let mut x: i32 = 1; let r: &i32 = &mut x; }`},
		{"decay in argument", `fn f(r: &i32) {} fn main() { let mut x: i32 = 1; f(&mut x); }`},
		{"ref comparison across mutability", `fn f(a: &i32, b: &mut i32) -> bool { a == b }`},
		{"shadowing in nested block", `fn main() { let x: i32 = 1; { let x: bool = true; x && false; } x + 1; }`},
		{"trailing return expression", `fn f() -> bool { 1 < 2 }`},
		{"default return type", `fn f() { 41 + 1 }`},
		{"string let", `fn main() { let s: str = "hello"; }`},
		{"function name shadows variable", `fn f() {} fn main() { let f: i32 = 1; f(); }`},
		{"nested shared borrows", `fn main() { let x: i32 = 1; let rr: &&i32 = &&x; }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, bag := checkSource(t, tc.src)
			if !ok {
				t.Errorf("diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"undefined variable", `fn main() { ghost; }`, diag.SemaUndefinedVariable},
		{"undefined function", `fn main() { let g: i32 = 1; g(); }`, diag.SemaUndefinedFunction},
		{"call of unresolved name", `fn main() { ghost(); }`, diag.SemaUndefinedVariable},
		{"duplicate parameter", `fn f(a: i32, a: bool) {}`, diag.SemaDuplicateParam},
		{"duplicate variable", `fn main() { let x: i32 = 1; let x: i32 = 2; }`, diag.SemaDuplicateVariable},
		{"let type mismatch", `fn main() { let x: i32 = true; }`, diag.SemaLetTypeMismatch},
		{"assign type mismatch", `fn main() { let mut x: i32 = 1; x = true; }`, diag.SemaAssignTypeMismatch},
		{"arithmetic on bool", `fn main() { 1 + true; }`, diag.SemaArithOperands},
		{"comparison of mixed kinds", `fn main() { 1 == true; }`, diag.SemaCompareOperands},
		{"logic on ints", `fn main() { 1 && 2; }`, diag.SemaLogicalOperands},
		{"negating bool", `fn main() { -true; }`, diag.SemaNegOperand},
		{"not on int", `fn main() { !1; }`, diag.SemaNotOperand},
		{"if condition not bool", `fn main() { if 1 { } }`, diag.SemaCondNotBool},
		{"while condition not bool", `fn main() { while 1 { } }`, diag.SemaCondNotBool},
		{"wrong arg count", `fn f(a: i32) {} fn main() { f(); }`, diag.SemaArgCount},
		{"arg type mismatch", `fn f(a: i32) {} fn main() { f(true); }`, diag.SemaArgTypeMismatch},
		{"shared ref into mut param", `fn f(r: &mut i32) {} fn main() { let mut x: i32 = 1; f(&x); }`, diag.SemaArgTypeMismatch},
		{"borrow immutable as mut", `fn main() { let x: i32 = 1; &mut x; }`, diag.SemaBorrowImmutable},
		{"double mut borrow", `fn main() { let mut z: i32 = 1; &mut z; &mut z; }`, diag.SemaAlreadyMutBorrowed},
		{"assign while mut borrowed", `fn main() { let mut z: i32 = 1; &mut z; z = 2; }`, diag.SemaUseWhileMutBorrowed},
		{"assign to immutable", `fn main() { let x: i32 = 1; x = 2; }`, diag.SemaAssignImmutable},
		{"return type mismatch", `fn f() -> bool { 1 }`, diag.SemaReturnTypeMismatch},
		{"default return expects i32", `fn f() { true }`, diag.SemaReturnTypeMismatch},
		{"callee is not a name", `fn f() {} fn main() { f()(); }`, diag.SemaCalleeNotFunction},
		{"function name as operand", `fn f() {} fn main() { f + 1; }`, diag.SemaInvalidOperand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, bag := checkSource(t, tc.src)
			if ok {
				t.Fatal("check unexpectedly passed")
			}
			items := bag.Items()
			if len(items) == 0 {
				t.Fatal("no diagnostics recorded")
			}
			if items[0].Code != tc.code {
				t.Errorf("code = %v (%s), want %v", items[0].Code, items[0].Message, tc.code)
			}
		})
	}
}

func TestCheckAnnotatesTree(t *testing.T) {
	program, ok, bag := checkSource(t, `fn main() { let mut x: i32 = 1; x = x + 1; }`)
	if !ok {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	body := program.Items[0].(*ast.FunctionDecl).Body

	let := body.Stmts[0].(*ast.LetStmt)
	if got := let.Init.Type(); got == nil || got.Kind != types.KindI32 {
		t.Errorf("init type = %v", got)
	}

	assign := body.Stmts[1].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if got := assign.Type(); got == nil || got.Kind != types.KindI32 {
		t.Errorf("assignment type = %v", got)
	}
	sum := assign.Right.(*ast.BinaryExpr)
	use := sum.Left.(*ast.Ident)
	if !use.MutBinding {
		t.Error("mutability bit not written back to identifier")
	}
	if got := use.Type(); got == nil || got.Kind != types.KindI32 {
		t.Errorf("identifier type = %v", got)
	}
}

func TestCheckBorrowPoisoningOutlivesBlock(t *testing.T) {
	// Заимствование во вложенном блоке помечает переменную во внешнем
	// кадре; освобождения нет, использование после блока — ошибка.
	_, ok, bag := checkSource(t, `fn main() {
		let mut z: i32 = 1;
		{
			let r: &mut i32 = &mut z;
		}
		z = 2;
	}`)
	if ok {
		t.Fatal("check unexpectedly passed")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaUseWhileMutBorrowed {
		t.Errorf("diagnostics: %v", items)
	}
}

func TestCheckSiblingsContinueAfterFailure(t *testing.T) {
	_, ok, bag := checkSource(t, `fn bad1() { ghost; }
	fn good() { let x: i32 = 1; }
	fn bad2() { 1 && 2; }`)
	if ok {
		t.Fatal("check unexpectedly passed")
	}
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics: %v", items)
	}
	if items[0].Code != diag.SemaUndefinedVariable || items[1].Code != diag.SemaLogicalOperands {
		t.Errorf("codes = %v, %v", items[0].Code, items[1].Code)
	}
}

func TestCheckStatementFailureStopsBlock(t *testing.T) {
	// Первая ошибка в блоке обрывает проверку его остатка.
	_, _, bag := checkSource(t, `fn main() {
		ghost;
		alsoGhost;
	}`)
	if got := bag.Len(); got != 1 {
		t.Errorf("diagnostics = %d, want 1", got)
	}
}

func TestCheckIdempotentRecheck(t *testing.T) {
	program, err := parser.Parse(`fn main() { let mut x: i32 = 1; x = x + 1; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !Check(program, diag.NopReporter{}) {
		t.Fatal("first check failed")
	}
	// Повторная проверка уже аннотированного дерева даёт тот же вердикт.
	if !Check(program, diag.NopReporter{}) {
		t.Fatal("second check failed")
	}

	bad, err := parser.Parse(`fn main() { let mut z: i32 = 1; &mut z; z = 2; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for run := range 2 {
		bag := diag.NewBag(8)
		if Check(bad, diag.BagReporter{Bag: bag}) {
			t.Fatalf("run %d unexpectedly passed", run)
		}
		if items := bag.Items(); len(items) != 1 || items[0].Code != diag.SemaUseWhileMutBorrowed {
			t.Errorf("run %d diagnostics: %v", run, items)
		}
	}
}

func TestAssignable(t *testing.T) {
	i32 := func() *types.Type { return &types.Type{Kind: types.KindI32} }
	ref := func(mut bool, base *types.Type) *types.Type {
		k := types.KindRef
		if mut {
			k = types.KindMutRef
		}
		return &types.Type{Kind: k, Base: base}
	}

	cases := []struct {
		name   string
		target *types.Type
		src    *types.Type
		want   bool
	}{
		{"same scalar", i32(), i32(), true},
		{"scalar mismatch", i32(), &types.Type{Kind: types.KindBool}, false},
		{"same ref", ref(false, i32()), ref(false, i32()), true},
		{"mut ref decay", ref(false, i32()), ref(true, i32()), true},
		{"no decay upward", ref(true, i32()), ref(false, i32()), false},
		{"nested decay", ref(false, ref(false, i32())), ref(false, ref(true, i32())), true},
		{"base mismatch", ref(false, i32()), ref(false, &types.Type{Kind: types.KindStr}), false},
		{"nil source", i32(), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := assignable(tc.target, tc.src); got != tc.want {
				t.Errorf("assignable(%s, %s) = %v", tc.target, tc.src, got)
			}
		})
	}
}

func TestCompatibleIsSymmetric(t *testing.T) {
	i32 := &types.Type{Kind: types.KindI32}
	shared := &types.Type{Kind: types.KindRef, Base: i32}
	mutable := &types.Type{Kind: types.KindMutRef, Base: i32}

	if !compatible(shared, mutable) || !compatible(mutable, shared) {
		t.Error("refs of differing mutability should compare as compatible")
	}
	if compatible(i32, &types.Type{Kind: types.KindBool}) {
		t.Error("i32 and bool should not be compatible")
	}
}
