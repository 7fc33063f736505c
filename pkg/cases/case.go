package cases

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/exprequiv/pkg/expr"
)

// ErrUnknownSuite is returned by Get for a name nothing registered.
var ErrUnknownSuite = errors.New("unknown suite")

// Want is the expected verdict of a Case.
type Want int

const (
	Equivalent Want = iota
	Distinct
)

var wantNames = map[Want]string{
	Equivalent: "equivalent",
	Distinct:   "distinct",
}

func (w Want) String() string {
	if s, ok := wantNames[w]; ok {
		return s
	}
	return fmt.Sprintf("Want(%d)", int(w))
}

// ParseWant maps "equivalent" or "distinct" to its Want.
func ParseWant(s string) (Want, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for w, name := range wantNames {
		if name == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown verdict %q (want equivalent or distinct)", s)
}

func (w Want) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Want) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseWant(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = parsed
	return nil
}

// Case is a pair of expressions and whether they should normalize to the
// same form.
type Case struct {
	Name string
	A, B expr.ExprNode
	Want Want
}

// Holds reports whether an equivalence verdict matches the expectation.
func (c Case) Holds(equivalent bool) bool {
	return equivalent == (c.Want == Equivalent)
}

func (c Case) String() string {
	rel := "=="
	if c.Want == Distinct {
		rel = "!="
	}
	return fmt.Sprintf("%s: %s %s %s", c.Name, c.A, rel, c.B)
}

// Suite builds a fresh set of cases. Normal forms are cached on the nodes,
// so every call must construct new trees.
type Suite func() []Case

var registry = map[string]Suite{}

// Register adds a suite to the registry.
func Register(name string, s Suite) {
	registry[name] = s
}

// Get builds the cases of the named suite.
func Get(name string) ([]Case, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownSuite, name, strings.Join(Names(), ", "))
	}
	return s(), nil
}

// Names returns all registered suite names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
