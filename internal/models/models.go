package models

import (
	"encoding/json"
	"fmt"

	"github.com/seb-luk/olo-platform/internal/filetype"
)

// JSONValue is a generic type to represent any decoded value.
// This can be a string, number, boolean, date, nil, object, or array.
type JSONValue interface{}

// JSONObject represents an object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents an array, which is a slice of JSONValues.
type JSONArray []JSONValue

// IntermediateRepresentation holds the parsed input in a way that's easy for the
// analyzer to work with.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool   // True if the root of the input is an array vs an object
	Format      string // Input format the root was decoded from ("json" or "yaml")
}

// Kind is the tagged variant a value classifies to.
type Kind int

const (
	Invalid Kind = iota
	Primitive
	Map
	List
)

var kindNames = [...]string{"invalid", "primitive", "map", "list"}

func (k Kind) String() string {
	if k < Invalid || k > List {
		return "invalid"
	}
	return kindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DataClass is implemented by types that carry data and need both a readable
// string form and a JSON form.
type DataClass interface {
	String() string
	MarshalJSON() ([]byte, error)
}

// Check is the verdict of one named guard.
type Check struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
}

// Issue is a nested value that is not data.
type Issue struct {
	Path   string `json:"path" yaml:"path"`
	Type   string `json:"type" yaml:"type"`
	Reason string `json:"reason" yaml:"reason"`
}

// AnalysisResult is what the analyzer found in a parsed value.
type AnalysisResult struct {
	Format   string            `json:"format" yaml:"format"`
	RootKind Kind              `json:"root_kind" yaml:"root_kind"`
	Checks   []Check           `json:"checks" yaml:"checks"`
	Guard    *Check            `json:"guard,omitempty" yaml:"guard,omitempty"`
	FileType filetype.FileType `json:"file_type,omitempty" yaml:"file_type,omitempty"`
	Deep     bool              `json:"deep" yaml:"deep"`
	Nodes    int               `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Issues   []Issue           `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Valid reports whether the root is data, the requested guard (if any) passed,
// and a deep walk (if any) found no issues.
func (r AnalysisResult) Valid() bool {
	if r.RootKind == Invalid {
		return false
	}
	if r.Guard != nil && !r.Guard.Passed {
		return false
	}
	return len(r.Issues) == 0
}

// Check returns the named root check.
func (r AnalysisResult) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func (r AnalysisResult) String() string {
	verdict := "valid"
	if !r.Valid() {
		verdict = "invalid"
	}
	s := fmt.Sprintf("%s %s: %s", r.Format, r.RootKind, verdict)
	if r.Guard != nil {
		s += fmt.Sprintf(", guard %s=%t", r.Guard.Name, r.Guard.Passed)
	}
	if r.Deep {
		s += fmt.Sprintf(", %d issues in %d nodes", len(r.Issues), r.Nodes)
	}
	return s
}

// MarshalJSON adds the overall verdict to the encoded result.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	type alias AnalysisResult
	return json.Marshal(struct {
		alias
		Valid bool `json:"valid"`
	}{alias(r), r.Valid()})
}

// MarshalYAML adds the overall verdict to the encoded result.
func (r AnalysisResult) MarshalYAML() (interface{}, error) {
	type alias AnalysisResult
	return struct {
		alias `yaml:",inline"`
		Valid bool `yaml:"valid"`
	}{alias(r), r.Valid()}, nil
}
