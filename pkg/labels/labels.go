// Package labels maps model class indices to category names.
package labels

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Category names produced by the diary classifier.
const (
	Family = "family"
	Couple = "couple"
	Friend = "friend"
	Food   = "food"
	Group  = "group"
)

var (
	// ErrUnknownIndex is returned when a class index has no entry in the table.
	ErrUnknownIndex = errors.New("unknown class index")

	// ErrInvalidTable is returned when a table cannot be built from the given names.
	ErrInvalidTable = errors.New("invalid label table")

	// ErrUnexpectedLabel is returned when a model names classes outside the expected set.
	ErrUnexpectedLabel = errors.New("unexpected label")
)

// Source tells where a resolved table came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

// genericLabel matches the placeholder names written by exporters when no
// label names were configured at training time.
var genericLabel = regexp.MustCompile(`^LABEL_\d+$`)

// Table is an ordered, immutable index to name mapping.
type Table struct {
	names []string
	index map[string]int
}

// New builds a table where names[i] is the label of class i.
// Names must be non-blank and unique.
func New(names ...string) (*Table, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidTable)
	}

	t := &Table{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: blank label at index %d", ErrInvalidTable, i)
		}
		if prev, ok := t.index[name]; ok {
			return nil, fmt.Errorf("%w: label %q used by index %d and %d", ErrInvalidTable, name, prev, i)
		}
		t.names[i] = name
		t.index[name] = i
	}

	return t, nil
}

// Default returns the table the diary category model was trained with.
func Default() *Table {
	t, err := New(Family, Couple, Friend, Food, Group)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of classes in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Lookup returns the label of class i.
func (t *Table) Lookup(i int) (string, error) {
	if i < 0 || i >= len(t.names) {
		return "", fmt.Errorf("%w: %d (table has %d labels)", ErrUnknownIndex, i, len(t.names))
	}
	return t.names[i], nil
}

// Index returns the class index of name.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Names returns a copy of the labels in index order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// FromID2Label builds a table from a model's id2label metadata.
// ok is false when the metadata is empty or only holds placeholder names,
// in which case the caller should fall back to its own table.
func FromID2Label(id2label map[int]string) (table *Table, ok bool, err error) {
	if len(id2label) == 0 {
		return nil, false, nil
	}

	names := make([]string, len(id2label))
	generic := true
	for i := range names {
		name, found := id2label[i]
		if !found {
			return nil, false, fmt.Errorf("%w: id2label has %d entries but no index %d", ErrInvalidTable, len(id2label), i)
		}
		if !genericLabel.MatchString(name) {
			generic = false
		}
		names[i] = name
	}
	if generic {
		return nil, false, nil
	}

	table, err = New(names...)
	if err != nil {
		return nil, false, err
	}
	return table, true, nil
}

// Resolve picks the table the model's predictions are read through.
// The model's own order is used when its id2label names exactly the entries
// of expected; placeholder or missing names fall back to expected itself.
// Any other name fails with ErrUnexpectedLabel.
func Resolve(id2label map[int]string, expected *Table) (*Table, Source, error) {
	table, ok, err := FromID2Label(id2label)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return expected, SourceDefault, nil
	}
	if err := sameNames(table, expected); err != nil {
		return nil, "", err
	}
	return table, SourceModel, nil
}

// sameNames checks that got holds the names of want, in any order
func sameNames(got, want *Table) error {
	for _, name := range got.names {
		if _, ok := want.Index(name); !ok {
			return fmt.Errorf("%w: model class %q is not one of %v", ErrUnexpectedLabel, name, want.names)
		}
	}
	if got.Len() != want.Len() {
		return fmt.Errorf("%w: model has %d classes, expected %d", ErrUnexpectedLabel, got.Len(), want.Len())
	}
	return nil
}
