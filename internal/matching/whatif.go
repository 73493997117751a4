package matching

import (
	"context"

	"github.com/unismart/unismart/internal/models"
)

// WhatIf runs two ranking passes, one for the unmodified profile and one
// for the profile with changes applied, and classifies how every candidate
// moved between them.
//
// Both rankings are truncated to topK independently, so a candidate missing
// from one side may simply have been outranked rather than rescored. Such
// one-sided entries get a nil delta score instead of a made-up comparison
// against an out-of-window value.
//
// Delta order is deterministic: scenario entries in scenario rank order,
// then dropped-out entries in base rank order.
func (m *Matcher) WhatIf(ctx context.Context, profile models.Profile, changes models.ProfileChanges, topK int) *models.WhatIfResult {
	base := m.Recommend(ctx, profile, topK, false)
	scenario := m.Recommend(ctx, changes.Apply(profile), topK, true)

	baseByKey := make(map[string]*models.Recommendation, len(base))
	for _, rec := range base {
		baseByKey[rec.CompoundID()] = rec
	}
	scenarioKeys := make(map[string]bool, len(scenario))

	deltas := make([]*models.Delta, 0, len(base)+len(scenario))

	for _, after := range scenario {
		key := after.CompoundID()
		scenarioKeys[key] = true

		before, ok := baseByKey[key]
		if !ok {
			deltas = append(deltas, &models.Delta{
				ID:     key,
				After:  after,
				Status: models.DeltaNewEntry,
			})
			continue
		}

		diff := round1(after.Score - before.Score)
		status := models.DeltaUnchanged
		switch {
		case diff > 0:
			status = models.DeltaImproved
		case diff < 0:
			status = models.DeltaDeclined
		}

		deltas = append(deltas, &models.Delta{
			ID:         key,
			Before:     before,
			After:      after,
			DeltaScore: &diff,
			Status:     status,
		})
	}

	for _, before := range base {
		if scenarioKeys[before.CompoundID()] {
			continue
		}
		deltas = append(deltas, &models.Delta{
			ID:     before.CompoundID(),
			Before: before,
			Status: models.DeltaDroppedOut,
		})
	}

	return &models.WhatIfResult{
		Base:           base,
		Scenario:       scenario,
		Deltas:         deltas,
		ChangesApplied: changes,
	}
}
