package models

// University represents an institution in the read-only catalog
type University struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	City     string     `json:"city" yaml:"city"`
	MinENT   float64    `json:"minENT" yaml:"min_ent"`
	MinIELTS float64    `json:"minIELTS" yaml:"min_ielts"`
	Programs []*Program `json:"programs" yaml:"programs"`
}

// Program represents a degree program offered by a university
type Program struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Degree         string   `json:"degree" yaml:"degree"`
	MinENT         float64  `json:"minENT" yaml:"min_ent"`
	MinIELTS       float64  `json:"minIELTS" yaml:"min_ielts"`
	Tuition        float64  `json:"tuition" yaml:"tuition"`         // KZT per year, 0 = government grant
	Duration       int      `json:"duration" yaml:"duration"`       // years
	EmploymentRate float64  `json:"employmentRate" yaml:"employment_rate"` // 0-100
	AvgSalary      float64  `json:"avgSalary" yaml:"avg_salary"`    // KZT
	Tags           []string `json:"tags,omitempty" yaml:"tags"`
}

// GetProgram returns a program by ID, or nil if the university does not offer it
func (u *University) GetProgram(id string) *Program {
	for _, p := range u.Programs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RequiredENT returns the effective ENT requirement for a program:
// the program's own value when set, else the university-wide default.
func (u *University) RequiredENT(p *Program) float64 {
	if p != nil && p.MinENT > 0 {
		return p.MinENT
	}
	return u.MinENT
}

// RequiredIELTS returns the effective IELTS requirement for a program.
// Zero means the program does not require IELTS.
func (u *University) RequiredIELTS(p *Program) float64 {
	if p != nil && p.MinIELTS > 0 {
		return p.MinIELTS
	}
	return u.MinIELTS
}
