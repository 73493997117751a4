package roadmap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/unismart/unismart/internal/models"
)

var fixedStart = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func sampleRequest() Request {
	return Request{
		Profile: models.Profile{ENTScore: 100, IELTSScore: 5.5, Budget: 1000000},
		University: &models.University{
			ID: "nu", Name: "Nazarbayev University", City: "Астана",
			MinENT: 120, MinIELTS: 6.5,
		},
		Program: &models.Program{
			ID: "cs", Name: "Computer Science", Degree: "Бакалавриат",
			MinENT: 125, MinIELTS: 6.5, Tuition: 0,
		},
		StartDate: fixedStart,
	}
}

func titles(items []*models.RoadmapItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestFallbackCoversEveryGap(t *testing.T) {
	items := Fallback(sampleRequest())

	if len(items) != 6 {
		t.Fatalf("expected 6 plan items, got %d: %v", len(items), titles(items))
	}

	// Documents always come first
	if !strings.Contains(items[0].Title, "документы") {
		t.Errorf("first item should be document preparation, got %q", items[0].Title)
	}

	// IELTS 5.5 < 6.5 and ENT 100 < 125: both prep items present
	if !strings.Contains(items[1].Title, "Подготовка IELTS") {
		t.Errorf("expected IELTS prep item, got %q", items[1].Title)
	}
	if !strings.Contains(items[2].Title, "Подготовка ЕНТ") {
		t.Errorf("expected ENT prep item, got %q", items[2].Title)
	}

	// Free program: no funding gap
	if !strings.Contains(items[4].Title, "достаточно средств") {
		t.Errorf("grant program must not produce a funding-gap item, got %q", items[4].Title)
	}

	// Due dates are ordered and ISO formatted
	prev := ""
	for _, it := range items {
		if _, err := time.Parse("2006-01-02", it.DueDate); err != nil {
			t.Errorf("item %q has bad due date %q", it.Title, it.DueDate)
		}
		if it.DueDate < prev {
			t.Errorf("due dates out of order: %q before %q", prev, it.DueDate)
		}
		prev = it.DueDate
		if it.ID == "" {
			t.Errorf("item %q has no id", it.Title)
		}
	}

	if items[0].DueDate != "2026-01-17" {
		t.Errorf("first due date = %s, want start+7d", items[0].DueDate)
	}
}

func TestFallbackSkipsPrepWhenScoresAreSufficient(t *testing.T) {
	req := sampleRequest()
	req.Profile = models.Profile{ENTScore: 140, IELTSScore: 7.5, Budget: 0}

	items := Fallback(req)

	got := strings.Join(titles(items), "|")
	if strings.Contains(got, "Подготовка IELTS") || strings.Contains(got, "Подготовка ЕНТ") {
		t.Errorf("no prep items expected when requirements are met: %v", titles(items))
	}
	if !strings.Contains(got, "уровень соответствует") {
		t.Errorf("expected confirming items instead of prep: %v", titles(items))
	}
}

func TestFallbackFundingGap(t *testing.T) {
	req := sampleRequest()
	req.Program = &models.Program{
		ID: "paid", Name: "Business", Degree: "Бакалавриат",
		MinENT: 50, Tuition: 2500000,
	}
	req.Profile = models.Profile{ENTScore: 120, Budget: 1000000}

	items := Fallback(req)

	var funding *models.RoadmapItem
	for _, it := range items {
		if strings.Contains(it.Title, "стипендий") {
			funding = it
		}
	}
	if funding == nil {
		t.Fatalf("expected funding item for a 1500000 KZT shortfall: %v", titles(items))
	}
	if !strings.Contains(funding.Title, "1500000") {
		t.Errorf("funding title should state the shortfall, got %q", funding.Title)
	}
	if len(funding.Subtasks) != 3 {
		t.Errorf("funding item subtasks = %d, want 3", len(funding.Subtasks))
	}
}

type stubAI struct {
	response string
	err      error
	prompts  []string
}

func (s *stubAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestGenerateParsesAIResponse(t *testing.T) {
	ai := &stubAI{response: "```json\n" + `{
		"roadmap": [
			{"title": "Сдать IELTS", "description": "Записаться на март", "due_date": "2026-03-01", "priority": 1, "notify_before_days": 7, "subtasks": []},
			{"title": "Подать документы", "description": "Через портал", "due_date": "not-a-date", "priority": 9},
			{"description": "без заголовка"}
		]
	}` + "\n```"}

	g := New(ai)
	items := g.Generate(context.Background(), sampleRequest())

	if len(items) != 2 {
		t.Fatalf("expected 2 valid items, got %d", len(items))
	}
	if items[0].Title != "Сдать IELTS" || items[0].DueDate != "2026-03-01" {
		t.Errorf("first item mismatch: %+v", items[0])
	}
	// Broken date gets replaced, out-of-range priority normalised
	if _, err := time.Parse("2006-01-02", items[1].DueDate); err != nil {
		t.Errorf("invalid due date was not replaced: %q", items[1].DueDate)
	}
	if items[1].Priority != 3 {
		t.Errorf("priority = %d, want normalised 3", items[1].Priority)
	}
	if items[1].ID == "" {
		t.Error("generated item must get an id")
	}

	if len(ai.prompts) != 1 || !strings.Contains(ai.prompts[0], "Nazarbayev University") {
		t.Error("prompt must carry the target university")
	}
}

func TestGenerateFallsBackOnAIFailure(t *testing.T) {
	g := New(&stubAI{err: errors.New("quota exceeded")})
	items := g.Generate(context.Background(), sampleRequest())

	if len(items) != 6 {
		t.Fatalf("expected fallback plan, got %d items", len(items))
	}
}

func TestGenerateFallsBackOnGarbageResponse(t *testing.T) {
	g := New(&stubAI{response: "I cannot produce JSON today."})
	items := g.Generate(context.Background(), sampleRequest())

	if len(items) != 6 {
		t.Fatalf("expected fallback plan, got %d items", len(items))
	}
}

func TestGenerateWithoutAIUsesFallback(t *testing.T) {
	g := New(nil)
	items := g.Generate(context.Background(), sampleRequest())

	if len(items) != 6 {
		t.Fatalf("expected fallback plan, got %d items", len(items))
	}
}
