package explain

import (
	"context"
	"fmt"

	"github.com/unismart/unismart/internal/models"
)

// Static is a rule-based explainer that derives the bundle directly from
// the factor breakdown. It is fully deterministic, needs no external
// service and never fails, which makes it the default when no AI backend
// is configured.
type Static struct{}

// NewStatic returns the rule-based explainer
func NewStatic() *Static {
	return &Static{}
}

// Explain implements Explainer
func (s *Static) Explain(_ context.Context, facts Facts) (*models.Explanation, error) {
	f := facts.Factors

	var quality string
	switch {
	case facts.Score >= 80:
		quality = "отличное соответствие"
	case facts.Score >= 60:
		quality = "хорошее соответствие"
	case facts.Score >= 40:
		quality = "среднее соответствие"
	default:
		quality = "базовое соответствие"
	}

	out := &models.Explanation{
		Summary: fmt.Sprintf("%s — программа '%s' показывает %s (оценка: %.0f/100).",
			facts.UniversityName, facts.ProgramName, quality, facts.Score),
	}

	// ENT
	if f.ENT.Status == models.StatusMeets {
		addFactor(out, "Баллы ЕНТ", fmt.Sprintf("Ваш результат (%.0f) соответствует требованию (%.0f)", f.ENT.User, f.ENT.Required), f.ENT.Contribution)
		out.Strengths = append(out.Strengths, "Результат ЕНТ соответствует требованиям")
	} else {
		addFactor(out, "Баллы ЕНТ", fmt.Sprintf("Ваш результат (%.0f) ниже требования (%.0f)", f.ENT.User, f.ENT.Required), f.ENT.Contribution)
		out.Considerations = append(out.Considerations, fmt.Sprintf("Нужно улучшить ЕНТ на %.0f баллов", f.ENT.Required-f.ENT.User))
	}

	// IELTS
	switch f.IELTS.Status {
	case models.StatusNotRequired:
		addFactor(out, "IELTS", "IELTS не требуется", f.IELTS.Contribution)
	case models.StatusMeets:
		addFactor(out, "IELTS", fmt.Sprintf("Ваш IELTS (%.1f) соответствует требованию (%.1f)", f.IELTS.User, f.IELTS.Required), f.IELTS.Contribution)
		out.Strengths = append(out.Strengths, "IELTS соответствует требованиям")
	default:
		addFactor(out, "IELTS", fmt.Sprintf("Ваш IELTS (%.1f) ниже требования (%.1f)", f.IELTS.User, f.IELTS.Required), f.IELTS.Contribution)
		out.Considerations = append(out.Considerations, fmt.Sprintf("Нужно улучшить IELTS на %.1f балла", f.IELTS.Required-f.IELTS.User))
	}

	// Budget
	switch f.Budget.Status {
	case models.StatusFree:
		addFactor(out, "Бюджет", "Бесплатное обучение (грант)", f.Budget.Contribution)
		out.Strengths = append(out.Strengths, "Бесплатное обучение")
	case models.StatusCovers:
		addFactor(out, "Бюджет", fmt.Sprintf("Бюджет (%.0f) покрывает стоимость (%.0f)", f.Budget.Budget, f.Budget.Tuition), f.Budget.Contribution)
	default:
		shortfall := f.Budget.Tuition - f.Budget.Budget
		addFactor(out, "Бюджет", fmt.Sprintf("Нужно %.0f тенге дополнительно", shortfall), f.Budget.Contribution)
		out.Considerations = append(out.Considerations, fmt.Sprintf("Недостаток средств: %.0f тенге/год", shortfall))
	}

	// City
	if f.City.Status == models.StatusMatches {
		addFactor(out, "Город", fmt.Sprintf("Город совпадает (%s)", f.City.UniversityCity), f.City.Contribution)
		if f.City.Preferred == f.City.UniversityCity {
			out.Strengths = append(out.Strengths, fmt.Sprintf("Университет в предпочитаемом городе (%s)", f.City.UniversityCity))
		}
	} else {
		addFactor(out, "Город", fmt.Sprintf("Город отличается: %s vs %s", f.City.UniversityCity, f.City.Preferred), f.City.Contribution)
	}

	// Outcomes
	addFactor(out, "Карьерные перспективы",
		fmt.Sprintf("Трудоустройство: %.0f%%, зарплата: %.0f тенге", f.Outcomes.Employment, f.Outcomes.AvgSalary),
		f.Outcomes.Contribution)
	if f.Outcomes.Employment >= 85 {
		out.Strengths = append(out.Strengths, fmt.Sprintf("Высокое трудоустройство (%.0f%%)", f.Outcomes.Employment))
	}

	switch {
	case facts.Score >= 70:
		out.Explanation = "Программа хорошо соответствует вашему профилю. Рекомендуем рассмотреть."
	case facts.Score >= 50:
		out.Explanation = "Программа подходит, но есть ограничения. Может быть вариантом."
	default:
		out.Explanation = "Базовое соответствие. Рассмотрите улучшение показателей."
	}

	if len(out.Strengths) == 0 {
		out.Strengths = []string{"Соответствие основным требованиям"}
	}
	if len(out.Strengths) > 3 {
		out.Strengths = out.Strengths[:3]
	}
	if len(out.Considerations) > 3 {
		out.Considerations = out.Considerations[:3]
	}

	return out, nil
}

func addFactor(e *models.Explanation, name, value string, contribution float64) {
	e.KeyFactors = append(e.KeyFactors, models.KeyFactor{
		Factor:       name,
		Value:        value,
		Contribution: contribution,
	})
}
