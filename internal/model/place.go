// Package model holds the shared domain types for location resolution.
package model

// Place is a curated registry entry for a city. The registry is loaded once
// at startup and never mutated.
type Place struct {
	ID         int     `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	NameHindi  string  `json:"nameHindi" yaml:"name_hindi"`
	Slug       string  `json:"slug" yaml:"slug"`
	State      string  `json:"state" yaml:"state"`
	StateHindi string  `json:"stateHindi" yaml:"state_hindi"`
	Country    string  `json:"country" yaml:"country"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Timezone   string  `json:"timezone" yaml:"timezone"`
	Population int     `json:"population" yaml:"population"`
	Tier       int     `json:"tier" yaml:"tier"` // 1 = metro, 2 = major, 3 = regional
}

// DisplayName formats the place as "City, State".
func (p Place) DisplayName() string {
	return p.Name + ", " + p.State
}

// DisplayNameHindi formats the place as "City, State" in Hindi.
func (p Place) DisplayNameHindi() string {
	return p.NameHindi + ", " + p.StateHindi
}

// ResolvedLocation is the outcome of a resolution request. Tier is 0 when the
// match exists only in the remote index and not the local registry.
type ResolvedLocation struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	NameHindi string  `json:"nameHindi,omitempty"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Slug      string  `json:"slug"`
	Tier      int     `json:"tier,omitempty"`
}
