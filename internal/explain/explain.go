// Package explain turns computed match facts into human-readable
// explanations. Explainers only interpret scores that the matching engine
// already produced; they never influence the numbers.
package explain

import (
	"context"
	"fmt"

	"github.com/unismart/unismart/internal/models"
)

// Facts is the verified input an explainer may reference. Nothing outside
// of it reaches the explainer, so explanations cannot invent data.
type Facts struct {
	UniversityID   string           `json:"university_id"`
	UniversityName string           `json:"university_name"`
	ProgramID      string           `json:"program_id"`
	ProgramName    string           `json:"program_name"`
	Score          float64          `json:"score"`
	Factors        models.Breakdown `json:"factors"`
	Profile        models.Profile   `json:"user_profile"`
}

// Explainer produces an explanation bundle for one scored candidate.
// Implementations may fail (network, parsing); callers substitute
// Fallback and continue.
type Explainer interface {
	Explain(ctx context.Context, facts Facts) (*models.Explanation, error)
}

// Fallback is the minimal deterministic bundle substituted when an
// explainer fails: a generic summary and empty factor lists.
func Fallback(facts Facts) *models.Explanation {
	return &models.Explanation{
		Summary:        fmt.Sprintf("%s — %s. Балл соответствия: %.1f/100.", facts.UniversityName, facts.ProgramName, facts.Score),
		KeyFactors:     []models.KeyFactor{},
		Explanation:    "Рекомендация основана на анализе соответствия критериев.",
		Strengths:      []string{},
		Considerations: []string{},
	}
}
