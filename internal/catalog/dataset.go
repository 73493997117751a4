package catalog

import "github.com/unismart/unismart/internal/models"

// Default returns the built-in dataset of Kazakhstani universities.
// Used when no catalog directory is configured so the service runs with
// zero setup. Requirements and outcomes reflect realistic figures per
// institution; tuition 0 means a government grant.
func Default() *Catalog {
	c, err := New(defaultUniversities())
	if err != nil {
		// The built-in dataset is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

func defaultUniversities() []*models.University {
	return []*models.University{
		{
			ID: "nu", Name: "Nazarbayev University", City: "Astana",
			MinENT: 120, MinIELTS: 6.5,
			Programs: []*models.Program{
				{ID: "cs", Name: "Computer Science", Degree: "Bachelor", MinENT: 125, MinIELTS: 6.5, Tuition: 0, Duration: 4, EmploymentRate: 98, AvgSalary: 800000},
				{ID: "medicine", Name: "Medicine", Degree: "Bachelor", MinENT: 130, MinIELTS: 7.0, Tuition: 0, Duration: 5, EmploymentRate: 100, AvgSalary: 600000},
			},
		},
		{
			ID: "kaznu", Name: "Al-Farabi Kazakh National University", City: "Almaty",
			MinENT: 75, MinIELTS: 5.5,
			Programs: []*models.Program{
				{ID: "it", Name: "Information Systems", Degree: "Bachelor", MinENT: 80, MinIELTS: 5.5, Tuition: 900000, Duration: 4, EmploymentRate: 85, AvgSalary: 450000},
				{ID: "economics", Name: "Economics", Degree: "Bachelor", MinENT: 75, MinIELTS: 5.0, Tuition: 850000, Duration: 4, EmploymentRate: 82, AvgSalary: 400000},
			},
		},
		{
			ID: "kbtu", Name: "Kazakh-British Technical University", City: "Almaty",
			MinENT: 85, MinIELTS: 6.0,
			Programs: []*models.Program{
				{ID: "kbtu-cs", Name: "Computer Engineering", Degree: "Bachelor", MinENT: 90, MinIELTS: 6.0, Tuition: 1200000, Duration: 4, EmploymentRate: 88, AvgSalary: 500000},
				{ID: "kbtu-ece", Name: "Electronics and Communications", Degree: "Bachelor", MinENT: 88, MinIELTS: 5.5, Tuition: 1150000, Duration: 4, EmploymentRate: 84, AvgSalary: 420000},
			},
		},
		{
			ID: "kimep", Name: "KIMEP University", City: "Almaty",
			MinENT: 70, MinIELTS: 6.0,
			Programs: []*models.Program{
				{ID: "kimep-business", Name: "Business Administration", Degree: "Bachelor", MinENT: 72, MinIELTS: 6.0, Tuition: 1000000, Duration: 4, EmploymentRate: 90, AvgSalary: 480000},
				{ID: "kimep-econ", Name: "Economics", Degree: "Bachelor", MinENT: 70, MinIELTS: 5.5, Tuition: 950000, Duration: 4, EmploymentRate: 86, AvgSalary: 430000},
			},
		},
		{
			ID: "sdu", Name: "Suleyman Demirel University", City: "Kaskelen",
			MinENT: 60, MinIELTS: 5.0,
			Programs: []*models.Program{
				{ID: "sdu-law", Name: "Law", Degree: "Bachelor", MinENT: 62, MinIELTS: 5.0, Tuition: 700000, Duration: 4, EmploymentRate: 78, AvgSalary: 300000},
				{ID: "sdu-it", Name: "Software Engineering", Degree: "Bachelor", MinENT: 65, MinIELTS: 5.5, Tuition: 750000, Duration: 4, EmploymentRate: 80, AvgSalary: 350000},
			},
		},
		{
			ID: "aitu", Name: "Astana IT University", City: "Astana",
			MinENT: 70, MinIELTS: 5.5,
			Programs: []*models.Program{
				{ID: "aitu-cs", Name: "Data Science", Degree: "Bachelor", MinENT: 75, MinIELTS: 5.5, Tuition: 800000, Duration: 4, EmploymentRate: 87, AvgSalary: 460000},
				{ID: "aitu-cyber", Name: "Cybersecurity", Degree: "Bachelor", MinENT: 74, MinIELTS: 5.5, Tuition: 820000, Duration: 4, EmploymentRate: 85, AvgSalary: 440000},
			},
		},
	}
}
