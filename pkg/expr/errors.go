package expr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNormalForm is returned when a normal form is passed where a freshly
	// built expression is expected.
	ErrNormalForm = errors.New("expression is already a normal form")
	// ErrAlreadyNormalized is returned by audits that need an expression
	// whose normal form has not been computed yet.
	ErrAlreadyNormalized = errors.New("expression has already been normalized")
)

// Shortage records an original value that occurs fewer times in the normal
// form than in the expression it was computed from.
type Shortage struct {
	Value float64
	Want  int
	Got   int
}

// OriginalsError reports every Shortage found by AuditOriginals.
type OriginalsError struct {
	Original  string
	Normal    string
	Shortages []Shortage
}

func (e *OriginalsError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s: want at least %d, got %d", formatValue(s.Value), s.Want, s.Got)
	}
	return fmt.Sprintf("normal form %s of %s lost original numbers (%s)",
		e.Normal, e.Original, strings.Join(parts, "; "))
}
