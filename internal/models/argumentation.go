package models

// ArgPoint is a single titled argument for or against applying
type ArgPoint struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Argumentation is the structured pros-and-risks view of one program
// for one profile
type Argumentation struct {
	ProgramID      string     `json:"program_id"` // compound "university-program"
	ProgramName    string     `json:"program_name"`
	UniversityName string     `json:"university_name"`
	ScoreMatch     int        `json:"score_match"`    // 0-100
	InterestMatch  int        `json:"interest_match"` // 0-100
	StrongPoints   []ArgPoint `json:"strong_points"`
	Risks          []ArgPoint `json:"risks"`
	RawProfile     Profile    `json:"raw_profile"`
}
