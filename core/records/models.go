package records

import (
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

// Mutation payloads. Updates carry the full field set and are re-validated
// against the NEW student/course pair, not the stored one.

type NewAssignment struct {
	StudentID   string `json:"studentId" validate:"required"`
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Due         string `json:"due" validate:"required,date_"`
}

func (na *NewAssignment) Validate() error {
	na.StudentID = core.CleanString(na.StudentID)
	na.CourseID = core.CleanString(na.CourseID)
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Due = core.CleanString(na.Due)
	return core.Validate.Struct(na)
}

type UpdateAssignment struct {
	StudentID   string `json:"studentId" validate:"required"`
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Due         string `json:"due" validate:"required,date_"`
}

func (ua *UpdateAssignment) Validate() error {
	ua.StudentID = core.CleanString(ua.StudentID)
	ua.CourseID = core.CleanString(ua.CourseID)
	ua.Title = core.CleanString(ua.Title)
	ua.Description = core.CleanString(ua.Description)
	ua.Due = core.CleanString(ua.Due)
	return core.Validate.Struct(ua)
}

type NewGrade struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
	Grade     string `json:"grade" validate:"required"`
	Feedback  string `json:"feedback"`
}

func (ng *NewGrade) Validate() error {
	ng.StudentID = core.CleanString(ng.StudentID)
	ng.CourseID = core.CleanString(ng.CourseID)
	ng.Grade = core.CleanString(ng.Grade)
	ng.Feedback = core.CleanString(ng.Feedback)
	return core.Validate.Struct(ng)
}

type UpdateGrade struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
	Grade     string `json:"grade" validate:"required"`
	Feedback  string `json:"feedback"`
}

func (ug *UpdateGrade) Validate() error {
	ug.StudentID = core.CleanString(ug.StudentID)
	ug.CourseID = core.CleanString(ug.CourseID)
	ug.Grade = core.CleanString(ug.Grade)
	ug.Feedback = core.CleanString(ug.Feedback)
	return core.Validate.Struct(ug)
}

// Dashboard projections, per role.

type (
	StudentDashboard struct {
		GradeLevel string          `json:"gradeLevel"`
		Courses    []school.Course `json:"courses"`
	}

	ChildSummary struct {
		Student school.Student  `json:"student"`
		Courses []school.Course `json:"courses"`
	}

	ParentDashboard struct {
		Children []ChildSummary `json:"children"`
	}

	CourseRoster struct {
		Course   school.Course    `json:"course"`
		Students []school.Student `json:"students"`
	}

	TeacherDashboard struct {
		Courses []CourseRoster `json:"courses"`
	}
)
