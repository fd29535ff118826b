package diag

import (
	"nust/internal/source"
)

// Diagnostic is a single reported problem anchored to a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
}
