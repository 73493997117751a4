package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/unismart/unismart/internal/catalog"
	"github.com/unismart/unismart/internal/explain"
	"github.com/unismart/unismart/internal/models"
)

// grantProgram builds a free program with perfect outcomes so only the ENT
// requirement differentiates scores in fixtures.
func grantProgram(id string, minENT float64) *models.Program {
	return &models.Program{
		ID: id, Name: "Program " + id, Degree: "Bachelor",
		MinENT: minENT, Tuition: 0,
		EmploymentRate: 100, AvgSalary: 2000000,
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]*models.University{
		{
			ID: "tech", Name: "Tech University", City: "Astana",
			Programs: []*models.Program{
				grantProgram("p1", 120),
				grantProgram("p2", 60),
			},
		},
		{
			ID: "econ", Name: "Econ University", City: "Almaty",
			Programs: []*models.Program{
				grantProgram("q1", 70),
				grantProgram("q2", 150),
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

// failingExplainer always errors, exercising the fallback path
type failingExplainer struct{ calls int }

func (f *failingExplainer) Explain(context.Context, explain.Facts) (*models.Explanation, error) {
	f.calls++
	return nil, errors.New("model unavailable")
}

func TestRecommendOrdersByScoreDescending(t *testing.T) {
	m := New(testCatalog(t), nil)
	recs := m.Recommend(context.Background(), models.Profile{ENTScore: 90}, 10, false)

	if len(recs) != 4 {
		t.Fatalf("expected all 4 programs, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Fatalf("ranking not descending at %d: %v > %v", i, recs[i].Score, recs[i-1].Score)
		}
	}
	// p2 (req 60) and q1 (req 70) are both fully met and tie; catalog
	// order decides.
	if recs[0].ProgramID != "p2" || recs[1].ProgramID != "q1" {
		t.Errorf("tie not broken by catalog order: got %s, %s", recs[0].ProgramID, recs[1].ProgramID)
	}
}

func TestRecommendTruncatesToTopK(t *testing.T) {
	m := New(testCatalog(t), nil)

	recs := m.Recommend(context.Background(), models.Profile{ENTScore: 90}, 2, false)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	// Non-positive topK falls back to the default
	recs = m.Recommend(context.Background(), models.Profile{ENTScore: 90}, 0, false)
	if len(recs) != 4 {
		t.Fatalf("expected all 4 programs under default topK, got %d", len(recs))
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	m := New(testCatalog(t), nil)
	profile := models.Profile{ENTScore: 90, IELTSScore: 6.0}

	a := m.Recommend(context.Background(), profile, 10, false)
	b := m.Recommend(context.Background(), profile, 10, false)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CompoundID() != b[i].CompoundID() || a[i].Score != b[i].Score {
			t.Fatalf("run differs at %d: %s/%v vs %s/%v",
				i, a[i].CompoundID(), a[i].Score, b[i].CompoundID(), b[i].Score)
		}
	}
}

func TestRecommendAttachesExplanations(t *testing.T) {
	m := New(testCatalog(t), nil)
	recs := m.Recommend(context.Background(), models.Profile{ENTScore: 90}, 3, false)

	for _, rec := range recs {
		if rec.Explanation == nil {
			t.Fatalf("%s: missing explanation", rec.CompoundID())
		}
		if rec.Explanation.Summary == "" {
			t.Errorf("%s: empty summary", rec.CompoundID())
		}
	}
}

func TestRecommendSurvivesExplainerFailure(t *testing.T) {
	f := &failingExplainer{}
	m := New(testCatalog(t), f)

	recs := m.Recommend(context.Background(), models.Profile{ENTScore: 90}, 3, false)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations despite explainer failure, got %d", len(recs))
	}
	if f.calls != 3 {
		t.Errorf("expected one explain attempt per candidate, got %d", f.calls)
	}

	for _, rec := range recs {
		if rec.Explanation == nil {
			t.Fatalf("%s: fallback bundle not substituted", rec.CompoundID())
		}
		if len(rec.Explanation.KeyFactors) != 0 {
			t.Errorf("%s: fallback bundle must have empty key factors", rec.CompoundID())
		}
	}

	// Ordering must match a run with a working explainer
	ok := New(testCatalog(t), nil).Recommend(context.Background(), models.Profile{ENTScore: 90}, 3, false)
	for i := range recs {
		if recs[i].CompoundID() != ok[i].CompoundID() || recs[i].Score != ok[i].Score {
			t.Fatalf("explainer failure changed ranking at %d", i)
		}
	}
}

func TestRecommendSimulationFlag(t *testing.T) {
	m := New(testCatalog(t), nil)
	for _, rec := range m.Recommend(context.Background(), models.Profile{}, 2, true) {
		if !rec.IsSimulation {
			t.Errorf("%s: simulation flag not propagated", rec.CompoundID())
		}
	}
}
