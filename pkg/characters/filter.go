package characters

import (
	"fmt"
	"strings"
)

// Filter constrains a character list query. All fields are optional;
// the zero value means "no constraint". Filter is a comparable value
// object: two field-wise equal filters are the same filter for caching.
type Filter struct {
	Name    string `json:"name,omitempty"`
	Status  Status `json:"status,omitempty"`
	Species string `json:"species,omitempty"`
	Type    string `json:"type,omitempty"`
	Gender  Gender `json:"gender,omitempty"`
}

// IsZero reports whether the filter carries no constraints.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Key returns a canonical string form of the filter for use inside cache
// keys. Field order is fixed so that field-wise equal filters always
// produce identical keys.
func (f Filter) Key() string {
	if f.IsZero() {
		return "{}"
	}
	parts := make([]string, 0, 5)
	if f.Name != "" {
		parts = append(parts, "name="+f.Name)
	}
	if f.Status != "" {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.Species != "" {
		parts = append(parts, "species="+f.Species)
	}
	if f.Type != "" {
		parts = append(parts, "type="+f.Type)
	}
	if f.Gender != "" {
		parts = append(parts, "gender="+string(f.Gender))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// String implements fmt.Stringer for log output.
func (f Filter) String() string {
	return fmt.Sprintf("Filter%s", f.Key())
}
