// Package roadmap builds personalised admission timelines for a chosen
// program. An AI-backed path produces free-form plans; a deterministic
// gap-driven fallback covers every AI failure.
package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unismart/unismart/internal/explain"
	"github.com/unismart/unismart/internal/models"
)

const roadmapPrompt = `Ты опытный советник по поступлению в университеты. Создай детализированный план поступления для студента.
ВАЖНО: Верни ТОЛЬКО валидный JSON без markdown.
Структура: {"roadmap": [{"title": "...", "description": "...", "due_date": "YYYY-MM-DD", "priority": 1, "notify_before_days": 7, "subtasks": [{"title": "...", "due_date": "YYYY-MM-DD"}]}]}
Создай 6-8 пунктов, специфичных для этой программы и профиля.

Студент с профилем:
- ЕНТ: %.0f
- IELTS: %.1f
- Бюджет: %.0f KZT
- Город: %s

Хочет поступить на:
- Университет: %s
- Программа: %s (%s)
- Стоимость: %.0f KZT в год
- Требования: ЕНТ %.0f, IELTS %.1f

Дата начала: %s
Дедлайн: %s

Верни ТОЛЬКО JSON!`

// ContentGenerator produces free-form text for a prompt. *explain.Gemini
// satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Request carries everything needed to plan an admission timeline
type Request struct {
	Profile    models.Profile
	University *models.University
	Program    *models.Program
	StartDate  time.Time // zero value means now
	Deadline   time.Time // optional
}

// Generator builds roadmaps, optionally via an AI backend
type Generator struct {
	ai ContentGenerator
}

// New creates a generator. A nil backend always uses the deterministic plan.
func New(ai ContentGenerator) *Generator {
	return &Generator{ai: ai}
}

// Generate returns an admission roadmap. AI output that cannot be fetched
// or parsed falls back to the gap-driven plan, never to an error.
func (g *Generator) Generate(ctx context.Context, req Request) []*models.RoadmapItem {
	if req.StartDate.IsZero() {
		req.StartDate = time.Now().UTC()
	}

	if g.ai != nil {
		items, err := g.generateAI(ctx, req)
		if err != nil {
			slog.Warn("ai roadmap generation failed, using fallback plan",
				"university", req.University.ID,
				"program", req.Program.ID,
				"error", err,
			)
		} else if len(items) > 0 {
			return items
		}
	}

	return Fallback(req)
}

func (g *Generator) generateAI(ctx context.Context, req Request) ([]*models.RoadmapItem, error) {
	deadline := "Не указан"
	if !req.Deadline.IsZero() {
		deadline = req.Deadline.Format("2006-01-02")
	}

	prompt := fmt.Sprintf(roadmapPrompt,
		req.Profile.ENTScore,
		req.Profile.IELTSScore,
		req.Profile.Budget,
		cityOrAny(req.Profile),
		req.University.Name,
		req.Program.Name,
		req.Program.Degree,
		req.Program.Tuition,
		req.University.RequiredENT(req.Program),
		req.University.RequiredIELTS(req.Program),
		req.StartDate.Format("2006-01-02"),
		deadline,
	)

	raw, err := g.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseRoadmap(raw, req.StartDate)
}

// parseRoadmap validates AI output. Items with broken due dates get an
// auto-calculated one instead of failing the whole plan.
func parseRoadmap(raw string, start time.Time) ([]*models.RoadmapItem, error) {
	cleaned := explain.ExtractJSON(raw)

	var data struct {
		Roadmap []json.RawMessage `json:"roadmap"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse roadmap response: %w", err)
	}

	var items []*models.RoadmapItem
	for _, rawItem := range data.Roadmap {
		var item models.RoadmapItem
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}
		if strings.TrimSpace(item.Title) == "" {
			continue
		}

		if _, err := time.Parse("2006-01-02", item.DueDate); err != nil {
			item.DueDate = dueDate(start, len(items)*20)
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Priority < 1 || item.Priority > 5 {
			item.Priority = 3
		}
		if item.NotifyBeforeDays < 0 {
			item.NotifyBeforeDays = 7
		}
		if item.Subtasks == nil {
			item.Subtasks = []models.RoadmapSubtask{}
		}

		items = append(items, &item)
	}

	return items, nil
}

// Fallback builds the deterministic gap-driven plan: documents first, then
// test preparation where scores fall short, application, funding, relocation.
func Fallback(req Request) []*models.RoadmapItem {
	if req.StartDate.IsZero() {
		req.StartDate = time.Now().UTC()
	}
	start := req.StartDate

	profile := req.Profile
	uni := req.University
	program := req.Program

	minENT := uni.RequiredENT(program)
	minIELTS := uni.RequiredIELTS(program)
	entGap := minENT - profile.ENTScore
	ieltsGap := minIELTS - profile.IELTSScore
	budgetGap := program.Tuition - profile.Budget

	var items []*models.RoadmapItem
	offset := 7

	items = append(items, &models.RoadmapItem{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("Подготовить документы для %s", uni.Name),
		Description: "Соберите оригиналы и копии: аттестат или диплом, выписку оценок, " +
			"паспорт, фотографии. Сделайте переводы на язык обучения.",
		DueDate:          dueDate(start, offset),
		Priority:         1,
		NotifyBeforeDays: 7,
		Subtasks:         []models.RoadmapSubtask{},
	})
	offset += 14

	if minIELTS > 0 && (ieltsGap > 0 || profile.IELTSScore == 0) {
		items = append(items, &models.RoadmapItem{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("Подготовка IELTS (текущий: %.1f, нужно: %.1f)", profile.IELTSScore, minIELTS),
			Description: fmt.Sprintf("Требуется улучшение на %.1f балла. Запишитесь на курсы подготовки, "+
				"сдайте пробный тест, зарегистрируйтесь на экзамен IELTS.", ieltsGap),
			DueDate:          dueDate(start, offset),
			Priority:         ieltsPriority(ieltsGap),
			NotifyBeforeDays: 14,
			Subtasks: []models.RoadmapSubtask{
				{Title: "Выбрать центр подготовки IELTS", DueDate: dueDate(start, offset)},
				{Title: "Сдать пробный тест", DueDate: dueDate(start, offset+7)},
				{Title: "Зарегистрироваться на экзамен", DueDate: dueDate(start, offset+10)},
			},
		})
		offset += 28
	} else {
		items = append(items, &models.RoadmapItem{
			ID:               uuid.NewString(),
			Title:            "IELTS: ваш уровень соответствует",
			Description:      fmt.Sprintf("IELTS %.1f покрывает требование %.1f. Можно переходить к подаче документов.", profile.IELTSScore, minIELTS),
			DueDate:          dueDate(start, offset),
			Priority:         3,
			NotifyBeforeDays: 0,
			Subtasks:         []models.RoadmapSubtask{},
		})
		offset += 7
	}

	if entGap > 0 {
		items = append(items, &models.RoadmapItem{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("Подготовка ЕНТ (текущий: %.0f, нужно: %.0f)", profile.ENTScore, minENT),
			Description: fmt.Sprintf("Нужно улучшить на %.0f баллов. Пройдите курсы подготовки, "+
				"решайте тесты, найдите репетитора по слабым предметам.", entGap),
			DueDate:          dueDate(start, offset),
			Priority:         1,
			NotifyBeforeDays: 14,
			Subtasks: []models.RoadmapSubtask{
				{Title: "Оценить текущий уровень (пробный тест)", DueDate: dueDate(start, offset)},
				{Title: "Записаться на курсы подготовки", DueDate: dueDate(start, offset+3)},
				{Title: "Еженедельно решать практические тесты", DueDate: dueDate(start, offset+30)},
			},
		})
		offset += 35
	} else {
		items = append(items, &models.RoadmapItem{
			ID:               uuid.NewString(),
			Title:            "ЕНТ: ваш уровень соответствует",
			Description:      fmt.Sprintf("ЕНТ %.0f покрывает требование %.0f. Можете подавать документы.", profile.ENTScore, minENT),
			DueDate:          dueDate(start, offset),
			Priority:         3,
			NotifyBeforeDays: 0,
			Subtasks:         []models.RoadmapSubtask{},
		})
		offset += 7
	}

	items = append(items, &models.RoadmapItem{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("Подать заявку на %s", program.Name),
		Description: fmt.Sprintf("Заполните онлайн-форму приёмной комиссии %s, загрузите все документы "+
			"и сохраните номер заявки.", uni.Name),
		DueDate:          dueDate(start, offset),
		Priority:         1,
		NotifyBeforeDays: 3,
		Subtasks: []models.RoadmapSubtask{
			{Title: "Найти ссылку на подачу документов", DueDate: dueDate(start, offset)},
			{Title: "Заполнить форму заявки", DueDate: dueDate(start, offset+1)},
			{Title: "Загрузить все документы", DueDate: dueDate(start, offset+2)},
		},
	})
	offset += 14

	if program.Tuition > 0 && budgetGap > 0 {
		items = append(items, &models.RoadmapItem{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("Поиск стипендий и финансирования (дефицит: %.0f KZT)", budgetGap),
			Description: fmt.Sprintf("Ваш бюджет %.0f KZT, стоимость программы %.0f KZT в год. "+
				"Ищите стипендии, гранты, кредиты или варианты рассрочки.", profile.Budget, program.Tuition),
			DueDate:          dueDate(start, offset),
			Priority:         1,
			NotifyBeforeDays: 7,
			Subtasks: []models.RoadmapSubtask{
				{Title: "Изучить стипендии на сайте университета", DueDate: dueDate(start, offset)},
				{Title: "Подать заявки на гранты", DueDate: dueDate(start, offset+5)},
				{Title: "Проверить варианты финансирования", DueDate: dueDate(start, offset+10)},
			},
		})
		offset += 21
	} else {
		items = append(items, &models.RoadmapItem{
			ID:               uuid.NewString(),
			Title:            "Финансирование: достаточно средств",
			Description:      fmt.Sprintf("Ваш бюджет %.0f KZT покрывает стоимость обучения %.0f KZT.", profile.Budget, program.Tuition),
			DueDate:          dueDate(start, offset),
			Priority:         3,
			NotifyBeforeDays: 0,
			Subtasks:         []models.RoadmapSubtask{},
		})
		offset += 7
	}

	items = append(items, &models.RoadmapItem{
		ID:    uuid.NewString(),
		Title: "Ожидание решения и подготовка к переезду",
		Description: fmt.Sprintf("Дождитесь ответа комиссии %s. Зарезервируйте жильё, "+
			"подготовьте визу при необходимости и спланируйте переезд.", uni.Name),
		DueDate:          dueDate(start, offset),
		Priority:         2,
		NotifyBeforeDays: 14,
		Subtasks:         []models.RoadmapSubtask{},
	})

	return items
}

func ieltsPriority(gap float64) int {
	if gap > 1 {
		return 1
	}
	return 2
}

func cityOrAny(p models.Profile) string {
	if p.HasCityPreference() {
		return p.PreferredCity
	}
	return models.CityAny
}

func dueDate(start time.Time, offsetDays int) string {
	return start.AddDate(0, 0, offsetDays).Format("2006-01-02")
}
