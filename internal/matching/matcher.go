// Package matching is the deterministic scoring and ranking core. It
// computes match scores, ranks the full catalog and diffs rankings under
// hypothetical profile changes. Explanations are attached after scoring
// and never feed back into the numbers.
package matching

import (
	"context"
	"log/slog"
	"sort"

	"github.com/unismart/unismart/internal/catalog"
	"github.com/unismart/unismart/internal/explain"
	"github.com/unismart/unismart/internal/models"
)

// DefaultTopK is the number of recommendations returned when the caller
// does not ask for a specific count
const DefaultTopK = 5

// Matcher ranks catalog programs against student profiles
type Matcher struct {
	catalog   *catalog.Catalog
	explainer explain.Explainer
}

// New creates a matcher over a read-only catalog. A nil explainer falls
// back to the rule-based one.
func New(cat *catalog.Catalog, explainer explain.Explainer) *Matcher {
	if explainer == nil {
		explainer = explain.NewStatic()
	}
	return &Matcher{catalog: cat, explainer: explainer}
}

// Recommend scores every program of every university and returns the top-K
// by descending score. The pass is exhaustive: catalogs are small, so
// correctness over the full candidate set beats early termination.
//
// Ordering is reproducible: the sort is stable, so equal scores keep the
// catalog's own iteration order.
func (m *Matcher) Recommend(ctx context.Context, profile models.Profile, topK int, isSimulation bool) []*models.Recommendation {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var candidates []*models.Recommendation
	for _, uni := range m.catalog.List() {
		for _, prog := range uni.Programs {
			score, breakdown := Score(profile, uni, prog)

			rec := &models.Recommendation{
				UniversityID:   uni.ID,
				ProgramID:      prog.ID,
				UniversityName: uni.Name,
				ProgramName:    prog.Name,
				Score:          score,
				Factors:        breakdown,
				IsSimulation:   isSimulation,
			}
			candidates = append(candidates, rec)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	// Explanations are attached only for the returned window. A failed
	// explainer never fails the ranking: substitute the minimal bundle
	// and continue.
	for _, rec := range candidates {
		facts := explain.Facts{
			UniversityID:   rec.UniversityID,
			UniversityName: rec.UniversityName,
			ProgramID:      rec.ProgramID,
			ProgramName:    rec.ProgramName,
			Score:          rec.Score,
			Factors:        rec.Factors,
			Profile:        profile,
		}

		explanation, err := m.explainer.Explain(ctx, facts)
		if err != nil {
			slog.Warn("explanation failed, using fallback",
				"university", rec.UniversityID,
				"program", rec.ProgramID,
				"error", err,
			)
			explanation = explain.Fallback(facts)
		}
		rec.Explanation = explanation
	}

	return candidates
}
