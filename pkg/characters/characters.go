// Package characters defines the domain types returned by the character
// catalog service: characters, episodes, pages, and the filter value used
// to constrain list queries.
package characters

import (
	"encoding/json"
	"strconv"
)

// ID is a character or episode identifier. The service exposes identifiers
// as GraphQL IDs, which arrive on the wire as strings; this type accepts
// both string and numeric encodings and always marshals as a number.
type ID int

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(id))
}

// Int returns the identifier as a plain int.
func (id ID) Int() int { return int(id) }

// Status is a character's life status as reported by the service.
// Values are service-defined and case-sensitive as returned.
type Status string

// Known status filter values accepted by the service.
const (
	StatusAlive   Status = "alive"
	StatusDead    Status = "dead"
	StatusUnknown Status = "unknown"
)

// Gender is a character's gender as reported by the service.
type Gender string

// Known gender filter values accepted by the service.
const (
	GenderFemale     Gender = "female"
	GenderMale       Gender = "male"
	GenderGenderless Gender = "genderless"
	GenderUnknown    Gender = "unknown"
)

// Ref is a named reference to a secondary entity such as a character's
// origin or last known location. Dimension is optional and tolerated but
// not requested by this client.
type Ref struct {
	Name      string  `json:"name"`
	Dimension *string `json:"dimension,omitempty"`
}

// Episode is a read-only, value-like reference to an episode a character
// appears in. Never mutated by this system.
type Episode struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	AirDate string `json:"air_date,omitempty"`
	Code    string `json:"episode"`
}

// Character is the catalog entity. The identifier is immutable once
// loaded; two characters with the same ID returned from different queries
// are the same logical entity for caching and favoriting purposes.
type Character struct {
	ID       ID        `json:"id"`
	Name     string    `json:"name"`
	Status   Status    `json:"status"`
	Species  string    `json:"species"`
	Type     string    `json:"type,omitempty"`
	Gender   Gender    `json:"gender"`
	Origin   Ref       `json:"origin"`
	Location Ref       `json:"location"`
	Image    string    `json:"image"`
	Episode  []Episode `json:"episode,omitempty"`
	Created  string    `json:"created,omitempty"`
}

// Info describes pagination state for a fetched page. Next and Prev are
// page-number cursors; nil means no page in that direction.
type Info struct {
	Count int  `json:"count"`
	Pages int  `json:"pages"`
	Next  *int `json:"next"`
	Prev  *int `json:"prev"`
}

// Page is one fetched page of list results, in service order.
type Page struct {
	Info    Info        `json:"info"`
	Results []Character `json:"results"`
}
