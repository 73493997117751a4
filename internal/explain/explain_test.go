package explain

import (
	"context"
	"strings"
	"testing"

	"github.com/unismart/unismart/internal/models"
)

func sampleFacts() Facts {
	return Facts{
		UniversityID:   "nu",
		UniversityName: "Nazarbayev University",
		ProgramID:      "cs",
		ProgramName:    "Computer Science",
		Score:          96.8,
		Factors: models.Breakdown{
			ENT:    models.RequirementFactor{User: 130, Required: 125, Contribution: 40, Status: models.StatusMeets},
			IELTS:  models.RequirementFactor{User: 7.0, Required: 6.5, Contribution: 20, Status: models.StatusMeets},
			Budget: models.BudgetFactor{Budget: 1000000, Tuition: 0, Contribution: 15, Status: models.StatusFree},
			City:   models.CityFactor{Preferred: "Astana", UniversityCity: "Astana", Contribution: 10, Status: models.StatusMatches},
			Outcomes: models.OutcomesFactor{
				Employment: 98, AvgSalary: 800000,
				EmploymentScore: 9.8, SalaryScore: 2.0, Contribution: 11.8,
			},
		},
		Profile: models.Profile{ENTScore: 130, IELTSScore: 7.0, Budget: 1000000, PreferredCity: "Astana"},
	}
}

func TestStaticExplainHighMatch(t *testing.T) {
	got, err := NewStatic().Explain(context.Background(), sampleFacts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got.Summary, "отличное соответствие") {
		t.Errorf("expected excellent match summary, got %q", got.Summary)
	}
	if len(got.KeyFactors) != 5 {
		t.Errorf("expected 5 key factors, got %d", len(got.KeyFactors))
	}
	if len(got.Strengths) == 0 || len(got.Strengths) > 3 {
		t.Errorf("expected 1-3 strengths, got %d", len(got.Strengths))
	}
	if len(got.Considerations) != 0 {
		t.Errorf("expected no considerations for a full match, got %v", got.Considerations)
	}
}

func TestStaticExplainBelowRequirements(t *testing.T) {
	facts := sampleFacts()
	facts.Score = 45.0
	facts.Factors.ENT = models.RequirementFactor{User: 90, Required: 125, Contribution: 0, Status: models.StatusBelow}
	facts.Factors.IELTS = models.RequirementFactor{User: 5.0, Required: 6.5, Contribution: 11, Status: models.StatusBelow}
	facts.Factors.Budget = models.BudgetFactor{Budget: 400000, Tuition: 900000, Contribution: 6.7, Status: models.StatusShortfall}

	got, err := NewStatic().Explain(context.Background(), facts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got.Summary, "среднее соответствие") {
		t.Errorf("expected medium match summary, got %q", got.Summary)
	}
	if len(got.Considerations) != 3 {
		t.Errorf("expected 3 considerations (ENT, IELTS, budget), got %v", got.Considerations)
	}
	found := false
	for _, c := range got.Considerations {
		if strings.Contains(c, "ЕНТ на 35") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ENT gap consideration, got %v", got.Considerations)
	}
}

func TestStaticExplainIsDeterministic(t *testing.T) {
	a, _ := NewStatic().Explain(context.Background(), sampleFacts())
	b, _ := NewStatic().Explain(context.Background(), sampleFacts())
	if a.Summary != b.Summary || len(a.KeyFactors) != len(b.KeyFactors) {
		t.Error("static explainer must be deterministic")
	}
}

func TestFallbackBundle(t *testing.T) {
	got := Fallback(sampleFacts())
	want := "Nazarbayev University — Computer Science. Балл соответствия: 96.8/100."
	if got.Summary != want {
		t.Errorf("summary = %q, want %q", got.Summary, want)
	}
	if len(got.KeyFactors) != 0 || len(got.Strengths) != 0 || len(got.Considerations) != 0 {
		t.Error("fallback bundle must carry only the generic summary")
	}
}

func TestParseExplanation(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "Отличный вариант.",
		"key_factors": [
			{"factor": "ЕНТ", "value": "130 из 125", "contribution": 40},
			"garbage entry",
			{"factor": "IELTS", "value": "7.0", "contribution": 20}
		],
		"explanation": "Подходит.",
		"strengths": ["ЕНТ"],
		"considerations": []
	}` + "\n```"

	got, err := parseExplanation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary != "Отличный вариант." {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.KeyFactors) != 2 {
		t.Fatalf("expected malformed factor dropped, got %d factors", len(got.KeyFactors))
	}
	if got.KeyFactors[0].Contribution != 40 {
		t.Errorf("contribution = %v, want 40", got.KeyFactors[0].Contribution)
	}
}

func TestParseExplanationRejectsNonJSON(t *testing.T) {
	if _, err := parseExplanation("извините, не могу помочь"); err == nil {
		t.Error("expected parse error for non-JSON response")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Вот ответ: {\"a\":1} — готово", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
