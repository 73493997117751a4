package matching

import (
	"testing"

	"github.com/unismart/unismart/internal/models"
)

// nuCS mirrors a flagship grant program: high requirements, free tuition,
// strong outcomes.
func nuCS() (*models.University, *models.Program) {
	p := &models.Program{
		ID: "cs", Name: "Computer Science", Degree: "Bachelor",
		MinENT: 125, MinIELTS: 6.5, Tuition: 0,
		EmploymentRate: 98, AvgSalary: 800000,
	}
	u := &models.University{
		ID: "nu", Name: "Nazarbayev University", City: "Astana",
		MinENT: 120, MinIELTS: 6.5,
		Programs: []*models.Program{p},
	}
	return u, p
}

func paidProgram(tuition float64) (*models.University, *models.Program) {
	p := &models.Program{
		ID: "it", Name: "Information Systems",
		MinENT: 80, MinIELTS: 5.5, Tuition: tuition,
		EmploymentRate: 85, AvgSalary: 450000,
	}
	u := &models.University{
		ID: "kaznu", Name: "KazNU", City: "Almaty",
		Programs: []*models.Program{p},
	}
	return u, p
}

func TestScoreFullMatchIsExactlyHundred(t *testing.T) {
	p := &models.Program{
		ID: "p", Name: "P",
		MinENT: 100, MinIELTS: 6.0, Tuition: 0,
		EmploymentRate: 100, AvgSalary: 2000000,
	}
	u := &models.University{ID: "u", Name: "U", City: "Astana", Programs: []*models.Program{p}}

	profile := models.Profile{ENTScore: 100, IELTSScore: 6.0, PreferredCity: "Astana"}

	score, b := Score(profile, u, p)
	if score != 100.0 {
		t.Fatalf("expected exactly 100.0, got %v", score)
	}
	if b.ENT.Contribution != 40 || b.IELTS.Contribution != 20 || b.Budget.Contribution != 15 ||
		b.City.Contribution != 10 || b.Outcomes.Contribution != 15 {
		t.Errorf("factor weights not conserved: %+v", b)
	}
}

func TestScoreHighMatchScenario(t *testing.T) {
	u, p := nuCS()
	profile := models.Profile{ENTScore: 130, IELTSScore: 7.0, Budget: 1000000, PreferredCity: "Astana"}

	score, b := Score(profile, u, p)

	// 40 + 20 + 15 + 10 + (9.8 employment + 2.0 salary) = 96.8
	if score != 96.8 {
		t.Errorf("expected 96.8, got %v", score)
	}
	if b.ENT.Status != models.StatusMeets {
		t.Errorf("ent status = %s, want meets", b.ENT.Status)
	}
	if b.Budget.Status != models.StatusFree {
		t.Errorf("budget status = %s, want free", b.Budget.Status)
	}
	if b.Outcomes.EmploymentScore != 9.8 || b.Outcomes.SalaryScore != 2.0 {
		t.Errorf("outcomes = %+v", b.Outcomes)
	}
}

func TestScoreLinearENTPenalty(t *testing.T) {
	u, p := nuCS()
	// 15 points below the requirement of 125
	profile := models.Profile{ENTScore: 110, IELTSScore: 7.0, Budget: 1000000, PreferredCity: "Astana"}

	_, b := Score(profile, u, p)
	if b.ENT.Contribution != 22.0 {
		t.Errorf("expected ENT contribution 40 - 15*1.2 = 22.0, got %v", b.ENT.Contribution)
	}
	if b.ENT.Status != models.StatusBelow {
		t.Errorf("ent status = %s, want below", b.ENT.Status)
	}
}

func TestScorePenaltyNeverGoesNegative(t *testing.T) {
	u, p := nuCS()
	profile := models.Profile{ENTScore: 10} // 115 below requirement

	score, b := Score(profile, u, p)
	if b.ENT.Contribution != 0 {
		t.Errorf("expected ENT contribution floored at 0, got %v", b.ENT.Contribution)
	}
	if score < 0 || score > 100 {
		t.Errorf("score out of range: %v", score)
	}
}

func TestScoreClampedForPathologicalInputs(t *testing.T) {
	u, p := nuCS()
	profiles := []models.Profile{
		{ENTScore: -1000, IELTSScore: -50, Budget: -1},
		{ENTScore: 1e9, IELTSScore: 9.0, Budget: 1e12},
	}
	for _, profile := range profiles {
		score, _ := Score(profile, u, p)
		if score < 0 || score > 100 {
			t.Errorf("score for %+v out of [0,100]: %v", profile, score)
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	u, p := paidProgram(900000)

	base := models.Profile{ENTScore: 40, IELTSScore: 4.0, Budget: 100000, PreferredCity: "Almaty"}

	prevTotal, prevB := Score(base, u, p)
	for ent := base.ENTScore + 5; ent <= 120; ent += 5 {
		profile := base
		profile.ENTScore = ent
		total, b := Score(profile, u, p)
		if b.ENT.Contribution < prevB.ENT.Contribution || total < prevTotal {
			t.Fatalf("ENT monotonicity violated at entScore=%v", ent)
		}
		prevTotal, prevB = total, b
	}

	prevTotal, prevB = Score(base, u, p)
	for ielts := base.IELTSScore + 0.5; ielts <= 9.0; ielts += 0.5 {
		profile := base
		profile.IELTSScore = ielts
		total, b := Score(profile, u, p)
		if b.IELTS.Contribution < prevB.IELTS.Contribution || total < prevTotal {
			t.Fatalf("IELTS monotonicity violated at ieltsScore=%v", ielts)
		}
		prevTotal, prevB = total, b
	}

	prevTotal, prevB = Score(base, u, p)
	for budget := base.Budget + 100000; budget <= 1200000; budget += 100000 {
		profile := base
		profile.Budget = budget
		total, b := Score(profile, u, p)
		if b.Budget.Contribution < prevB.Budget.Contribution || total < prevTotal {
			t.Fatalf("budget monotonicity violated at budget=%v", budget)
		}
		prevTotal, prevB = total, b
	}
}

func TestScoreFreeTuitionInvariant(t *testing.T) {
	u, p := nuCS() // tuition 0
	for _, budget := range []float64{0, 1, 500000, 1e9} {
		profile := models.Profile{ENTScore: 130, IELTSScore: 7.0, Budget: budget}
		_, b := Score(profile, u, p)
		if b.Budget.Contribution != 15 {
			t.Errorf("budget=%v: expected full 15 points for free tuition, got %v", budget, b.Budget.Contribution)
		}
		if b.Budget.Status != models.StatusFree {
			t.Errorf("budget=%v: status = %s, want free", budget, b.Budget.Status)
		}
	}
}

func TestScoreBudgetShortfallProportional(t *testing.T) {
	u, p := paidProgram(1000000)
	profile := models.Profile{ENTScore: 100, IELTSScore: 6.0, Budget: 800000}

	_, b := Score(profile, u, p)
	if b.Budget.Contribution != 12.0 {
		t.Errorf("expected 15 * 800000/1000000 = 12.0, got %v", b.Budget.Contribution)
	}
	if b.Budget.Status != models.StatusShortfall {
		t.Errorf("budget status = %s, want shortfall", b.Budget.Status)
	}
}

func TestScoreIELTSNotRequired(t *testing.T) {
	p := &models.Program{ID: "p", Name: "P", MinENT: 60, Tuition: 500000}
	u := &models.University{ID: "u", Name: "U", City: "Almaty", Programs: []*models.Program{p}}

	profile := models.Profile{ENTScore: 70} // no IELTS at all
	_, b := Score(profile, u, p)

	if b.IELTS.Contribution != 20 {
		t.Errorf("expected full IELTS points when not required, got %v", b.IELTS.Contribution)
	}
	if b.IELTS.Status != models.StatusNotRequired {
		t.Errorf("ielts status = %s, want not_required", b.IELTS.Status)
	}
}

func TestScoreCityPreference(t *testing.T) {
	u, p := nuCS() // Astana

	cases := []struct {
		name      string
		preferred string
		points    float64
		status    models.FactorStatus
	}{
		{"no preference", "", 10, models.StatusMatches},
		{"any city", models.CityAny, 10, models.StatusMatches},
		{"same city", "Astana", 10, models.StatusMatches},
		{"different city", "Almaty", 0, models.StatusDifferent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := models.Profile{ENTScore: 130, PreferredCity: tc.preferred}
			_, b := Score(profile, u, p)
			if b.City.Contribution != tc.points {
				t.Errorf("expected %v city points, got %v", tc.points, b.City.Contribution)
			}
			if b.City.Status != tc.status {
				t.Errorf("city status = %s, want %s", b.City.Status, tc.status)
			}
		})
	}
}

func TestScoreProgramOverridesUniversityRequirement(t *testing.T) {
	u, p := nuCS()
	// Meets the university default (120) but not the program override (125)
	profile := models.Profile{ENTScore: 122}
	_, b := Score(profile, u, p)
	if b.ENT.Required != 125 {
		t.Errorf("expected program requirement 125, got %v", b.ENT.Required)
	}
	if b.ENT.Status != models.StatusBelow {
		t.Errorf("ent status = %s, want below", b.ENT.Status)
	}
}

func TestScoreOutcomesCapped(t *testing.T) {
	p := &models.Program{ID: "p", Name: "P", Tuition: 0, EmploymentRate: 100, AvgSalary: 10000000}
	u := &models.University{ID: "u", Name: "U", City: "Almaty", Programs: []*models.Program{p}}

	_, b := Score(models.Profile{}, u, p)
	if b.Outcomes.EmploymentScore != 10 {
		t.Errorf("employment score capped at 10, got %v", b.Outcomes.EmploymentScore)
	}
	if b.Outcomes.SalaryScore != 5 {
		t.Errorf("salary score capped at 5, got %v", b.Outcomes.SalaryScore)
	}
}
