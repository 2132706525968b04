package koji

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/kojiimport/internal/sets"
)

// Ledger declares the fields of one node type and whether each is required.
// A Ledger is immutable once built and shared by every builder of its type.
type Ledger struct {
	fields *orderedmap.OrderedMap[string, bool]
}

func newLedger(required []string, optional []string) *Ledger {
	m := orderedmap.NewOrderedMap[string, bool]()
	for _, name := range required {
		m.Set(name, true)
	}
	for _, name := range optional {
		m.Set(name, false)
	}
	return &Ledger{fields: m}
}

// Declared ledgers per node type.
var (
	BuildDescriptionFields = newLedger(
		[]string{FieldName, FieldVersion, FieldRelease, FieldSource, FieldStartTime, FieldEndTime},
		[]string{FieldOwner, FieldExtra},
	)

	BuildRootFields = newLedger(
		[]string{FieldID, FieldHost, FieldContainer, FieldContentGenerator},
		[]string{FieldTools, FieldComponents},
	)

	BuildOutputFields = newLedger(
		[]string{FieldBuildRootID, FieldFilename, FieldFileSize, FieldArch, FieldChecksumType, FieldChecksum, FieldType},
		[]string{FieldComponents, FieldExtra},
	)
)

// IsRequired reports whether name is declared and required.
func (l *Ledger) IsRequired(name string) bool {
	required, ok := l.fields.Get(name)
	return ok && required
}

// Declared reports whether name is a field of this node type.
func (l *Ledger) Declared(name string) bool {
	_, ok := l.fields.Get(name)
	return ok
}

// Fields returns every declared field in declaration order.
func (l *Ledger) Fields() []string {
	out := make([]string, 0, l.fields.Len())
	for el := l.fields.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Required returns the required fields in declaration order.
func (l *Ledger) Required() []string {
	var out []string
	for el := l.fields.Front(); el != nil; el = el.Next() {
		if el.Value {
			out = append(out, el.Key)
		}
	}
	return out
}

// findMissing renders template once per required field that has reports
// as unset and adds the result to missing.
func (l *Ledger) findMissing(has func(field string) bool, template string, missing sets.Set[string]) {
	for el := l.fields.Front(); el != nil; el = el.Next() {
		if el.Value && !has(el.Key) {
			missing.Add(fmt.Sprintf(template, el.Key))
		}
	}
}
