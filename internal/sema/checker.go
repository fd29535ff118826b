// Package sema performs scope-resolved type inference, assignability
// checking and simplified borrow-conflict analysis over a parsed program.
//
// Проверка аннотирует дерево на месте: каждому выражению записывается
// выведенный тип, идентификаторам — бит мутабельности привязки. Вердикт —
// «ни одной диагностики». Ошибка обрывает проверку конкретного statement,
// соседние statement'ы и функции проверяются дальше.
package sema

import (
	"nust/internal/ast"
	"nust/internal/diag"
	"nust/internal/source"
	"nust/internal/types"
)

// binding — отслеживаемое состояние переменной в кадре области видимости.
// typ меняется при мутабельном заимствовании (и никогда не возвращается
// назад: освобождение заимствований не моделируется).
type binding struct {
	typ   *types.Type
	isMut bool
}

// Checker holds the state of a single type-checking pass.
type Checker struct {
	program  *ast.Program
	reporter diag.Reporter
	scopes   []map[string]binding
	errs     int
}

// Check runs the type checker over program, reporting diagnostics to
// reporter. It returns true when no error diagnostics were produced.
// Each call starts from fresh state; re-checking an already annotated tree
// yields the same verdict.
func Check(program *ast.Program, reporter diag.Reporter) bool {
	c := &Checker{program: program, reporter: reporter}
	for _, item := range program.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			c.checkFunction(fn)
		}
	}
	return c.errs == 0
}

func (c *Checker) report(code diag.Code, span source.Span, msg string) {
	c.errs++
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, span, msg)
	}
}

// --- scope stack ---

func (c *Checker) enterScope() {
	c.scopes = append(c.scopes, make(map[string]binding))
}

func (c *Checker) exitScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// declare вводит имя в текущем кадре; false — имя уже объявлено в нём.
func (c *Checker) declare(name string, typ *types.Type, isMut bool) bool {
	if len(c.scopes) == 0 {
		c.enterScope()
	}
	top := c.scopes[len(c.scopes)-1]
	if _, exists := top[name]; exists {
		return false
	}
	top[name] = binding{typ: typ, isMut: isMut}
	return true
}

// lookup идёт от внутреннего кадра к внешнему, первое совпадение
// побеждает (затенение). Тип возвращается глубокой копией.
func (c *Checker) lookup(name string) (binding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i][name]; ok {
			return binding{typ: b.typ.Clone(), isMut: b.isMut}, true
		}
	}
	return binding{}, false
}

// markMutBorrowed перезаписывает отслеживаемый тип переменной на
// MutRef(старый тип) во ВСЕХ кадрах, где она есть. Обратного перехода нет.
func (c *Checker) markMutBorrowed(name string, span source.Span) {
	for i := range c.scopes {
		if b, ok := c.scopes[i][name]; ok {
			c.scopes[i][name] = binding{
				typ:   types.NewRef(true, b.typ.Clone(), span),
				isMut: b.isMut,
			}
		}
	}
}

// --- program-level name resolution ---

func (c *Checker) findFunction(name string) *ast.FunctionDecl {
	for _, item := range c.program.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

func (c *Checker) isFunctionName(name string) bool {
	return c.findFunction(name) != nil
}

// --- type relations ---

// assignable — направленная совместимость source → target. Совпадающие
// виды совместимы (для ссылок — рекурсивно по базовым типам); кроме того,
// &mut T неявно распадается в &T.
func assignable(target, src *types.Type) bool {
	if target == nil || src == nil {
		return false
	}
	if target.Kind == src.Kind {
		if target.IsRef() {
			return assignable(target.Base, src.Base)
		}
		return true
	}
	if target.Kind == types.KindRef && src.Kind == types.KindMutRef {
		return assignable(target.Base, src.Base)
	}
	return false
}

// compatible — симметричное отношение для сравнений: равные виды либо
// ссылки разной мутабельности на совместимые базовые типы.
func compatible(lhs, rhs *types.Type) bool {
	if lhs == nil || rhs == nil {
		return false
	}
	if lhs.Kind == rhs.Kind {
		if lhs.IsRef() {
			return compatible(lhs.Base, rhs.Base)
		}
		return true
	}
	if (lhs.Kind == types.KindRef && rhs.Kind == types.KindMutRef) ||
		(lhs.Kind == types.KindMutRef && rhs.Kind == types.KindRef) {
		return compatible(lhs.Base, rhs.Base)
	}
	return false
}
