package matching

import (
	"fmt"

	"github.com/unismart/unismart/internal/models"
)

// Argue builds a rule-based pros-and-risks view of one program for a profile.
// Unlike Score it produces human-readable arguments, not ranking input; the
// aggregate score_match is a coarse indicator and is not comparable with
// Recommendation.Score.
func Argue(profile models.Profile, u *models.University, p *models.Program) *models.Argumentation {
	out := &models.Argumentation{
		ProgramID:      u.ID + "-" + p.ID,
		ProgramName:    p.Name,
		UniversityName: u.Name,
		StrongPoints:   []models.ArgPoint{},
		Risks:          []models.ArgPoint{},
	}
	out.RawProfile = models.Profile{
		ENTScore:   profile.ENTScore,
		IELTSScore: profile.IELTSScore,
		Budget:     profile.Budget,
	}

	minENT := u.RequiredENT(p)
	if profile.ENTScore >= minENT {
		out.StrongPoints = append(out.StrongPoints, models.ArgPoint{
			Title:  "Соответствие по ЕНТ",
			Detail: fmt.Sprintf("ЕНТ %.0f покрывает минимум %.0f", profile.ENTScore, minENT),
		})
	} else {
		out.Risks = append(out.Risks, models.ArgPoint{
			Title:  "ЕНТ ниже требования",
			Detail: fmt.Sprintf("ЕНТ %.0f ниже минимума %.0f, рекомендуется подготовка", profile.ENTScore, minENT),
		})
	}

	if minIELTS := u.RequiredIELTS(p); minIELTS > 0 {
		switch {
		case profile.IELTSScore >= minIELTS:
			out.StrongPoints = append(out.StrongPoints, models.ArgPoint{
				Title:  "Языковые требования",
				Detail: fmt.Sprintf("IELTS %.1f покрывает минимум %.1f", profile.IELTSScore, minIELTS),
			})
		case profile.IELTSScore > 0:
			out.Risks = append(out.Risks, models.ArgPoint{
				Title:  "Разрыв по IELTS",
				Detail: fmt.Sprintf("IELTS %.1f ниже минимума %.1f, нужен план подготовки", profile.IELTSScore, minIELTS),
			})
		default:
			out.Risks = append(out.Risks, models.ArgPoint{
				Title:  "IELTS не указан",
				Detail: "Нужно подтвердить уровень языка",
			})
		}
	}

	matched, total := interestOverlap(profile.Interests, p.Tags)
	if len(profile.Interests) > 0 && total > 0 {
		if len(matched) > 0 {
			out.StrongPoints = append(out.StrongPoints, models.ArgPoint{
				Title:  "Совпадение интересов",
				Detail: "Интересы: " + joinComma(matched),
			})
		} else {
			out.Risks = append(out.Risks, models.ArgPoint{
				Title:  "Низкое совпадение интересов",
				Detail: "Ваши интересы не совпадают с ключевыми направлениями программы",
			})
		}
		out.InterestMatch = len(matched) * 100 / total
	}

	if profile.Budget >= p.Tuition {
		out.StrongPoints = append(out.StrongPoints, models.ArgPoint{
			Title:  "Финансы",
			Detail: "Бюджет покрывает стоимость обучения",
		})
	} else {
		out.Risks = append(out.Risks, models.ArgPoint{
			Title:  "Финансирование",
			Detail: fmt.Sprintf("Недостаток средств: %.0f KZT. Рассмотрите стипендии и кредиты", p.Tuition-profile.Budget),
		})
	}

	score := 50
	if n := len(out.StrongPoints); n > 0 {
		score += min(40, n*12)
	}
	if n := len(out.Risks); n > 0 {
		score -= min(30, n*10)
	}
	out.ScoreMatch = clampInt(score, 0, 100)

	return out
}

// interestOverlap preserves tag order so the output is deterministic
func interestOverlap(interests, tags []string) ([]string, int) {
	set := make(map[string]bool, len(interests))
	for _, i := range interests {
		set[i] = true
	}

	var matched []string
	for _, tag := range tags {
		if set[tag] {
			matched = append(matched, tag)
		}
	}
	return matched, len(tags)
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
