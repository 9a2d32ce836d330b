package report

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Scope says which stage produced a finding.
type Scope string

const (
	ScopeStructure  Scope = "structure"
	ScopeCollection Scope = "collection"
	ScopeCatalog    Scope = "catalog"
)

// Finding is one reported defect. Findings are data, never fatal on their own.
type Finding struct {
	Scope    Scope  `json:"scope"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Scope, f.Location, f.Message)
}

func (f Finding) MarshalZerologObject(e *zerolog.Event) {
	e.Str("scope", string(f.Scope))
	e.Str("location", f.Location)
	e.Str("message", f.Message)
}

// Structure builds a structure-scoped finding.
func Structure(location, format string, args ...any) Finding {
	return Finding{Scope: ScopeStructure, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Collection builds a collection-scoped finding.
func Collection(location, format string, args ...any) Finding {
	return Finding{Scope: ScopeCollection, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Catalog builds a catalog-scoped finding.
func Catalog(location, format string, args ...any) Finding {
	return Finding{Scope: ScopeCatalog, Location: location, Message: fmt.Sprintf(format, args...)}
}

// Report is the ordered result of validating a whole catalog.
type Report struct {
	Findings        []Finding `json:"findings"`
	CollectionCount int       `json:"collectionCount"`
}

// Passed is true only when there are no findings at all.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

func (r *Report) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// ByScope returns the findings of one scope, keeping report order.
func (r *Report) ByScope(scope Scope) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Scope == scope {
			out = append(out, f)
		}
	}
	return out
}
