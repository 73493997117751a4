package models

// FactorStatus is a qualitative tag derived from the comparison a factor's
// formula performs, never from the resulting points.
type FactorStatus string

const (
	StatusMeets       FactorStatus = "meets"
	StatusBelow       FactorStatus = "below"
	StatusNotRequired FactorStatus = "not_required"
	StatusFree        FactorStatus = "free"
	StatusCovers      FactorStatus = "covers"
	StatusShortfall   FactorStatus = "shortfall"
	StatusMatches     FactorStatus = "matches"
	StatusDifferent   FactorStatus = "different"
)

// RequirementFactor covers factors compared against a minimum (ENT, IELTS)
type RequirementFactor struct {
	User         float64      `json:"user"`
	Required     float64      `json:"required"`
	Contribution float64      `json:"contribution"`
	Status       FactorStatus `json:"status"`
}

// BudgetFactor covers the budget-vs-tuition comparison
type BudgetFactor struct {
	Budget       float64      `json:"budget"`
	Tuition      float64      `json:"tuition"`
	Contribution float64      `json:"contribution"`
	Status       FactorStatus `json:"status"`
}

// CityFactor covers the city preference comparison
type CityFactor struct {
	Preferred      string       `json:"preferred"`
	UniversityCity string       `json:"university_city"`
	Contribution   float64      `json:"contribution"`
	Status         FactorStatus `json:"status"`
}

// OutcomesFactor covers employment rate and average salary. It has no
// requirement and therefore no status tag.
type OutcomesFactor struct {
	Employment      float64 `json:"employment"`
	AvgSalary       float64 `json:"avgSalary"`
	EmploymentScore float64 `json:"employment_score"`
	SalaryScore     float64 `json:"salary_score"`
	Contribution    float64 `json:"contribution"`
}

// Breakdown is a per-factor account of how a score was assembled
type Breakdown struct {
	ENT      RequirementFactor `json:"ent"`
	IELTS    RequirementFactor `json:"ielts"`
	Budget   BudgetFactor      `json:"budget"`
	City     CityFactor        `json:"city"`
	Outcomes OutcomesFactor    `json:"outcomes"`
}

// Recommendation is one ranked candidate produced by a matching pass
type Recommendation struct {
	UniversityID   string       `json:"university_id"`
	ProgramID      string       `json:"program_id"`
	UniversityName string       `json:"university_name"`
	ProgramName    string       `json:"program_name"`
	Score          float64      `json:"score"`
	Factors        Breakdown    `json:"factors"`
	Explanation    *Explanation `json:"explanation,omitempty"`
	IsSimulation   bool         `json:"is_simulation"`
}

// CompoundID returns the "{universityID}-{programID}" key used to match
// candidates across ranking runs
func (r *Recommendation) CompoundID() string {
	return r.UniversityID + "-" + r.ProgramID
}

// DeltaStatus classifies how a candidate moved between base and scenario
type DeltaStatus string

const (
	DeltaImproved   DeltaStatus = "improved"
	DeltaDeclined   DeltaStatus = "declined"
	DeltaUnchanged  DeltaStatus = "unchanged"
	DeltaNewEntry   DeltaStatus = "new_entry"
	DeltaDroppedOut DeltaStatus = "dropped_out"
)

// Delta describes one candidate's movement between the base and scenario
// rankings. DeltaScore is nil when the candidate appears on only one side:
// absence from a truncated top-K does not mean the score collapsed, so no
// number is invented.
type Delta struct {
	ID         string          `json:"id"`
	Before     *Recommendation `json:"before"`
	After      *Recommendation `json:"after"`
	DeltaScore *float64        `json:"delta_score"`
	Status     DeltaStatus     `json:"status"`
}

// WhatIfResult bundles the two ranking runs and their diff
type WhatIfResult struct {
	Base           []*Recommendation `json:"base"`
	Scenario       []*Recommendation `json:"scenario"`
	Deltas         []*Delta          `json:"deltas"`
	ChangesApplied ProfileChanges    `json:"changes_applied"`
}

// KeyFactor is one named factor inside an explanation
type KeyFactor struct {
	Factor       string  `json:"factor"`
	Value        string  `json:"value"`
	Contribution float64 `json:"contribution"`
}

// Explanation is the human-readable bundle produced by an explainer.
// It never feeds back into scoring.
type Explanation struct {
	Summary        string      `json:"summary"`
	KeyFactors     []KeyFactor `json:"key_factors"`
	Explanation    string      `json:"explanation"`
	Strengths      []string    `json:"strengths"`
	Considerations []string    `json:"considerations"`
}
