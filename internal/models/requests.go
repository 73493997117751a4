package models

// RegisterRequest creates an account, optionally seeding the profile
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	ENT      *float64 `json:"ent,omitempty"`
	IELTS    *float64 `json:"ielts,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	City     string   `json:"city,omitempty"`
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by all auth endpoints
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *User     `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}

// RecommendationRequest asks for a ranked top-K for a profile
type RecommendationRequest struct {
	Profile Profile `json:"profile"`
	TopK    int     `json:"top_k,omitempty"`
}

// WhatIfRequest asks for a base-vs-scenario comparison
type WhatIfRequest struct {
	Profile Profile        `json:"profile"`
	Changes ProfileChanges `json:"changes"`
	TopK    int            `json:"top_k,omitempty"`
}

// ProfileUpdateRequest carries partial profile settings; nil fields are untouched
type ProfileUpdateRequest struct {
	ENTScore        *float64  `json:"entScore,omitempty"`
	IELTSScore      *float64  `json:"ieltsScore,omitempty"`
	Budget          *float64  `json:"budget,omitempty"`
	PreferredCity   *string   `json:"preferredCity,omitempty"`
	Interests       *[]string `json:"interests,omitempty"`
	ProfileSubjects *[]string `json:"profileSubjects,omitempty"`
}

// Apply merges non-nil fields over an existing profile
func (r ProfileUpdateRequest) Apply(base Profile) Profile {
	out := base
	if r.ENTScore != nil {
		out.ENTScore = *r.ENTScore
	}
	if r.IELTSScore != nil {
		out.IELTSScore = *r.IELTSScore
	}
	if r.Budget != nil {
		out.Budget = *r.Budget
	}
	if r.PreferredCity != nil {
		out.PreferredCity = *r.PreferredCity
	}
	if r.Interests != nil {
		out.Interests = *r.Interests
	}
	if r.ProfileSubjects != nil {
		out.ProfileSubjects = *r.ProfileSubjects
	}
	return out
}

// FavoritesRequest replaces the user's favorites list
type FavoritesRequest struct {
	Favorites []string `json:"favorites"`
}

// ComparisonRequest replaces the user's comparison list
type ComparisonRequest struct {
	ComparisonList []string `json:"comparison_list"`
}

// ApplicationsRequest replaces the user's applications list
type ApplicationsRequest struct {
	Applications []*Application `json:"applications"`
}

// RoadmapRequest asks for a personalised admission roadmap
type RoadmapRequest struct {
	UserID       string `json:"user_id"`
	UniversityID string `json:"university_id"`
	ProgramID    string `json:"program_id"`
	StartDate    string `json:"start_date,omitempty"` // ISO date
	Deadline     string `json:"deadline,omitempty"`   // ISO date
}
