package source

import (
	"fmt"
)

// Span — полуинтервал [Start, End) в байтах исходного текста.
// Компиляция всегда работает с одним файлом, поэтому FileID не нужен.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// Mk builds a span from two byte offsets.
func Mk(start, end uint32) Span {
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Cover расширяет span так, чтобы он покрывал other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
