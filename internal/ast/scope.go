package ast

// Scope — лексическая область видимости на стороне парсера.
// Хранит имена, объявленные непосредственно в ней, и невладеющую ссылку
// на родителя. Это позиционные метаданные для последующих фаз: сам Scope
// ничего не ищет и не разрешает.
type Scope struct {
	Parent       *Scope
	Declarations []string
}

// NewScope creates a scope chained to parent. Parent is nil at top level.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent}
}

// Declare appends a name declared directly in this scope.
func (s *Scope) Declare(name string) {
	s.Declarations = append(s.Declarations, name)
}

// Depth returns the number of enclosing scopes above this one.
func (s *Scope) Depth() int {
	n := 0
	for p := s.Parent; p != nil; p = p.Parent {
		n++
	}
	return n
}
