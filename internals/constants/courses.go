package constants

// Course codes offered for admission. The set is closed: anything else is a
// validation error.
const (
	CourseComputerScience        = "computer_science"
	CourseMechanicalEngineering  = "mechanical_engineering"
	CourseElectricalEngineering  = "electrical_engineering"
	CourseCivilEngineering       = "civil_engineering"
	CourseBusinessAdministration = "business_administration"
	CourseDataScience            = "data_science"
)

type Course struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var Courses = []Course{
	{CourseComputerScience, "Computer Science"},
	{CourseMechanicalEngineering, "Mechanical Engineering"},
	{CourseElectricalEngineering, "Electrical Engineering"},
	{CourseCivilEngineering, "Civil Engineering"},
	{CourseBusinessAdministration, "Business Administration"},
	{CourseDataScience, "Data Science"},
}

func IsCourse(code string) bool {
	for _, c := range Courses {
		if c.Code == code {
			return true
		}
	}
	return false
}

// CourseLabel returns the display name, or the code itself if unknown.
func CourseLabel(code string) string {
	for _, c := range Courses {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}
