package models

// CityAny is the profile value meaning "no city preference"
const CityAny = "Любой"

// Profile is a snapshot of a student's scores, budget and preferences.
// It is scoring input only: the matching engine never mutates it and absent
// numeric fields simply contribute zero.
type Profile struct {
	ENTScore        float64  `json:"entScore"`
	IELTSScore      float64  `json:"ieltsScore"`
	Budget          float64  `json:"budget"` // KZT per year
	PreferredCity   string   `json:"preferredCity,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	ProfileSubjects []string `json:"profileSubjects,omitempty"`
}

// HasCityPreference reports whether the profile restricts results to a city.
// An empty value and the literal "Любой" both mean no preference.
func (p Profile) HasCityPreference() bool {
	return p.PreferredCity != "" && p.PreferredCity != CityAny
}

// ProfileChanges holds hypothetical modifications for a what-if run.
// Nil fields leave the base profile untouched; set fields fully replace the
// corresponding base value.
type ProfileChanges struct {
	ENTScore      *float64 `json:"entScore,omitempty"`
	IELTSScore    *float64 `json:"ieltsScore,omitempty"`
	Budget        *float64 `json:"budget,omitempty"`
	PreferredCity *string  `json:"preferredCity,omitempty"`
}

// Apply returns a copy of the profile with the changes shallow-merged over it.
func (c ProfileChanges) Apply(base Profile) Profile {
	out := base
	if c.ENTScore != nil {
		out.ENTScore = *c.ENTScore
	}
	if c.IELTSScore != nil {
		out.IELTSScore = *c.IELTSScore
	}
	if c.Budget != nil {
		out.Budget = *c.Budget
	}
	if c.PreferredCity != nil {
		out.PreferredCity = *c.PreferredCity
	}
	return out
}

// IsEmpty reports whether no change is requested
func (c ProfileChanges) IsEmpty() bool {
	return c.ENTScore == nil && c.IELTSScore == nil && c.Budget == nil && c.PreferredCity == nil
}
