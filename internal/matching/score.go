package matching

import (
	"math"

	"github.com/unismart/unismart/internal/models"
)

// Factor weights. They sum to 100 so a fully matched profile scores exactly
// 100.0. Linear penalties below a requirement keep every factor monotone in
// its input, which gives what-if deltas an intuitive sign.
const (
	entMax   = 40.0
	ieltsMax = 20.0
	budgetMax = 15.0
	cityMax   = 10.0

	employmentMax = 10.0
	salaryMax     = 5.0

	entPenaltyPerPoint  = 1.2
	ieltsPenaltyPerBand = 6.0

	// KZT per year considered an excellent starting salary
	salaryBaseline = 2000000.0
)

// Score computes the heuristic match score (0-100) for one program along
// with a per-factor breakdown. Pure and deterministic: missing profile
// fields degrade the score, they never produce an error.
func Score(profile models.Profile, university *models.University, program *models.Program) (float64, models.Breakdown) {
	var b models.Breakdown
	total := 0.0

	// ENT: primary eligibility gate. Full points at the requirement, linear
	// penalty below it instead of a hard cutoff.
	entRequired := university.RequiredENT(program)
	entPoints := entMax
	entStatus := models.StatusMeets
	if profile.ENTScore < entRequired {
		entPoints = math.Max(0, entMax-(entRequired-profile.ENTScore)*entPenaltyPerPoint)
		entStatus = models.StatusBelow
	}
	b.ENT = models.RequirementFactor{
		User:         profile.ENTScore,
		Required:     entRequired,
		Contribution: round1(entPoints),
		Status:       entStatus,
	}
	total += entPoints

	// IELTS: a zero requirement means the program does not ask for it and
	// the factor is granted in full.
	ieltsRequired := university.RequiredIELTS(program)
	ieltsPoints := ieltsMax
	ieltsStatus := models.StatusNotRequired
	if ieltsRequired > 0 {
		ieltsStatus = models.StatusMeets
		if profile.IELTSScore < ieltsRequired {
			ieltsPoints = math.Max(0, ieltsMax-(ieltsRequired-profile.IELTSScore)*ieltsPenaltyPerBand)
			ieltsStatus = models.StatusBelow
		}
	}
	b.IELTS = models.RequirementFactor{
		User:         profile.IELTSScore,
		Required:     ieltsRequired,
		Contribution: round1(ieltsPoints),
		Status:       ieltsStatus,
	}
	total += ieltsPoints

	// Budget: free programs always score in full, whatever the budget.
	// A shortfall earns proportional credit rather than zero.
	budgetPoints := budgetMax
	budgetStatus := models.StatusFree
	switch {
	case program.Tuition == 0:
	case profile.Budget >= program.Tuition:
		budgetStatus = models.StatusCovers
	default:
		budgetPoints = math.Max(0, budgetMax*(profile.Budget/math.Max(1, program.Tuition)))
		budgetStatus = models.StatusShortfall
	}
	b.Budget = models.BudgetFactor{
		Budget:       profile.Budget,
		Tuition:      program.Tuition,
		Contribution: round1(budgetPoints),
		Status:       budgetStatus,
	}
	total += budgetPoints

	// City: binary. Small weight since relocation is possible.
	cityPoints := cityMax
	cityStatus := models.StatusMatches
	if profile.HasCityPreference() && profile.PreferredCity != university.City {
		cityPoints = 0
		cityStatus = models.StatusDifferent
	}
	preferred := profile.PreferredCity
	if preferred == "" {
		preferred = models.CityAny
	}
	b.City = models.CityFactor{
		Preferred:      preferred,
		UniversityCity: university.City,
		Contribution:   cityPoints,
		Status:         cityStatus,
	}
	total += cityPoints

	// Outcomes: employment rate and salary, each capped, no requirement.
	employmentPoints := math.Min(employmentMax, program.EmploymentRate/100.0*employmentMax)
	salaryPoints := math.Min(salaryMax, program.AvgSalary/salaryBaseline*salaryMax)
	b.Outcomes = models.OutcomesFactor{
		Employment:      program.EmploymentRate,
		AvgSalary:       program.AvgSalary,
		EmploymentScore: round1(employmentPoints),
		SalaryScore:     round1(salaryPoints),
		Contribution:    round1(employmentPoints + salaryPoints),
	}
	total += employmentPoints + salaryPoints

	return clamp(round1(total), 0, 100), b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
