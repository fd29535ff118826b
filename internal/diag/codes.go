package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Пространства кодов по фазам:
// 2000-е — синтаксис, 3000-е — семантика, 4000-е — компиляция в байткод.
type Code uint16

const (
	// UnknownCode marks a diagnostic without an assigned code.
	UnknownCode Code = 0

	// Синтаксические
	SynExpectedToken       Code = 2001
	SynExpectedIdentifier  Code = 2002
	SynExpectedExpression  Code = 2003
	SynExpectedType        Code = 2004
	SynUnterminatedString  Code = 2005
	SynInvalidAssignTarget Code = 2006
	SynBadIntLiteral       Code = 2007

	// Семантические
	SemaUndefinedVariable    Code = 3001
	SemaUndefinedFunction    Code = 3002
	SemaDuplicateParam       Code = 3003
	SemaDuplicateVariable    Code = 3004
	SemaLetTypeMismatch      Code = 3005
	SemaAssignTypeMismatch   Code = 3006
	SemaArithOperands        Code = 3007
	SemaCompareOperands      Code = 3008
	SemaLogicalOperands      Code = 3009
	SemaNegOperand           Code = 3010
	SemaNotOperand           Code = 3011
	SemaCondNotBool          Code = 3012
	SemaArgCount             Code = 3013
	SemaArgTypeMismatch      Code = 3014
	SemaBorrowImmutable      Code = 3015
	SemaAlreadyMutBorrowed   Code = 3016
	SemaUseWhileMutBorrowed  Code = 3017
	SemaAssignImmutable      Code = 3018
	SemaReturnTypeMismatch   Code = 3019
	SemaAssignTargetNotIdent Code = 3020
	SemaCalleeNotFunction    Code = 3021
	SemaInvalidOperand       Code = 3022

	// Compile-stage (internal invariant violations surfaced to the CLI)
	CmpInternal Code = 4001
)

// ID returns the stable printable identifier for the code.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CMP%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return c.ID()
}
