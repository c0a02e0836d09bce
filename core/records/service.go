package records

import (
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

var (
	// errors
	ErrNotFound         = errors.New("record not found")
	ErrNotTeacher       = errors.New("only teachers may modify records")
	ErrStudentNotLinked = errors.New("account is not linked to a student")
	ErrUnknownRole      = errors.New("unknown account role")

	errNotEnrolled = errors.New("selected student is not enrolled in that course (or you do not teach it)")
	errNoStudent   = errors.New("student not found")
)

// Service computes role-gated visibility sets over the domain model and
// validates all record mutations.
type Service struct {
	school *school.Service
}

func NewService(schoolSvc *school.Service) *Service {
	return &Service{school: schoolSvc}
}

// visibleStudentIDs computes the set of student ids an identity may read:
// self for students, children for parents, taught-course roster for teachers.
func (svc *Service) visibleStudentIDs(id Identity) map[string]struct{} {
	ids := make(map[string]struct{})
	switch ident := id.(type) {
	case StudentIdentity:
		ids[ident.Student.ID] = struct{}{}
	case ParentIdentity:
		for _, child := range ident.Children {
			ids[child.ID] = struct{}{}
		}
	case TeacherIdentity:
		for _, s := range svc.school.Snapshot().StudentsTaught(ident.CourseIDs) {
			ids[s.ID] = struct{}{}
		}
	}
	return ids
}

// Assignments returns the identity's visibility set over assignments.
func (svc *Service) Assignments(id Identity) []school.Assignment {
	visible := svc.visibleStudentIDs(id)
	items := make([]school.Assignment, 0)
	for _, a := range svc.school.Snapshot().Assignments {
		if _, ok := visible[a.StudentID]; ok {
			items = append(items, a)
		}
	}
	return items
}

// Grades returns the identity's visibility set over grades.
func (svc *Service) Grades(id Identity) []school.Grade {
	visible := svc.visibleStudentIDs(id)
	items := make([]school.Grade, 0)
	for _, g := range svc.school.Snapshot().Grades {
		if _, ok := visible[g.StudentID]; ok {
			items = append(items, g)
		}
	}
	return items
}

// Dashboard returns the role-specific read-only aggregation:
// StudentDashboard, ParentDashboard or TeacherDashboard.
func (svc *Service) Dashboard(id Identity) interface{} {
	snap := svc.school.Snapshot()
	switch ident := id.(type) {
	case StudentIdentity:
		return StudentDashboard{
			GradeLevel: ident.Student.GradeLevel,
			Courses:    snap.EnrolledCourses(ident.Student),
		}
	case ParentIdentity:
		children := make([]ChildSummary, 0, len(ident.Children))
		for _, child := range ident.Children {
			children = append(children, ChildSummary{
				Student: child,
				Courses: snap.EnrolledCourses(child),
			})
		}
		return ParentDashboard{Children: children}
	case TeacherIdentity:
		rosters := make([]CourseRoster, 0, len(ident.CourseIDs))
		for _, cid := range ident.CourseIDs {
			course, ok := snap.CourseByID(cid)
			if !ok {
				continue
			}
			rosters = append(rosters, CourseRoster{
				Course:   course,
				Students: snap.StudentsInCourse(cid),
			})
		}
		return TeacherDashboard{Courses: rosters}
	}
	return nil
}

// AllowedCourses computes the intersection of the courses the teacher teaches
// and the courses the student is enrolled in; edit forms recompute this
// whenever the target student changes. An unknown student yields an empty set.
func (svc *Service) AllowedCourses(t TeacherIdentity, studentID string) []school.Course {
	snap := svc.school.Snapshot()
	courses := make([]school.Course, 0)
	student, ok := snap.StudentByID(studentID)
	if !ok {
		return courses
	}
	for _, cid := range t.CourseIDs {
		if !student.EnrolledIn(cid) {
			continue
		}
		if c, ok := snap.CourseByID(cid); ok {
			courses = append(courses, c)
		}
	}
	return courses
}

// checkEnrollment enforces the core mutation rule: the target student must be
// enrolled in the course AND the acting teacher must teach it.
func (svc *Service) checkEnrollment(t TeacherIdentity, studentID, courseID string) error {
	student, ok := svc.school.Snapshot().StudentByID(studentID)
	if !ok {
		return core.NewValidationError(errNoStudent, core.FieldError{Field: "studentId", Error: errNoStudent.Error()})
	}
	if !student.EnrolledIn(courseID) || !t.Teaches(courseID) {
		return core.NewValidationError(errNotEnrolled, core.FieldError{Field: "courseId", Error: errNotEnrolled.Error()})
	}
	return nil
}

func asTeacher(id Identity) (TeacherIdentity, error) {
	t, ok := id.(TeacherIdentity)
	if !ok {
		return TeacherIdentity{}, ErrNotTeacher
	}
	return t, nil
}

func (svc *Service) CreateAssignment(id Identity, na NewAssignment) (school.Assignment, error) {
	t, err := asTeacher(id)
	if err != nil {
		return school.Assignment{}, err
	}
	if err := na.Validate(); err != nil {
		return school.Assignment{}, err
	}
	if err := svc.checkEnrollment(t, na.StudentID, na.CourseID); err != nil {
		return school.Assignment{}, err
	}

	a := school.Assignment{
		ID:          uuid.New().String(),
		StudentID:   na.StudentID,
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		Due:         na.Due,
	}
	if err := svc.school.PutAssignment(a); err != nil {
		return school.Assignment{}, pkgerrors.Wrap(err, "saving assignment")
	}
	return a, nil
}

func (svc *Service) UpdateAssignment(id Identity, assignmentID string, ua UpdateAssignment) (school.Assignment, error) {
	t, err := asTeacher(id)
	if err != nil {
		return school.Assignment{}, err
	}
	if err := ua.Validate(); err != nil {
		return school.Assignment{}, err
	}
	if _, ok := svc.school.Snapshot().AssignmentByID(assignmentID); !ok {
		return school.Assignment{}, ErrNotFound
	}
	if err := svc.checkEnrollment(t, ua.StudentID, ua.CourseID); err != nil {
		return school.Assignment{}, err
	}

	a := school.Assignment{
		ID:          assignmentID,
		StudentID:   ua.StudentID,
		CourseID:    ua.CourseID,
		Title:       ua.Title,
		Description: ua.Description,
		Due:         ua.Due,
	}
	if err := svc.school.PutAssignment(a); err != nil {
		return school.Assignment{}, pkgerrors.Wrap(err, "saving assignment")
	}
	return a, nil
}

func (svc *Service) CreateGrade(id Identity, ng NewGrade) (school.Grade, error) {
	t, err := asTeacher(id)
	if err != nil {
		return school.Grade{}, err
	}
	if err := ng.Validate(); err != nil {
		return school.Grade{}, err
	}
	if err := svc.checkEnrollment(t, ng.StudentID, ng.CourseID); err != nil {
		return school.Grade{}, err
	}

	g := school.Grade{
		ID:        uuid.New().String(),
		StudentID: ng.StudentID,
		CourseID:  ng.CourseID,
		Grade:     ng.Grade,
		Feedback:  ng.Feedback,
	}
	if err := svc.school.PutGrade(g); err != nil {
		return school.Grade{}, pkgerrors.Wrap(err, "saving grade")
	}
	return g, nil
}

func (svc *Service) UpdateGrade(id Identity, gradeID string, ug UpdateGrade) (school.Grade, error) {
	t, err := asTeacher(id)
	if err != nil {
		return school.Grade{}, err
	}
	if err := ug.Validate(); err != nil {
		return school.Grade{}, err
	}
	if _, ok := svc.school.Snapshot().GradeByID(gradeID); !ok {
		return school.Grade{}, ErrNotFound
	}
	if err := svc.checkEnrollment(t, ug.StudentID, ug.CourseID); err != nil {
		return school.Grade{}, err
	}

	g := school.Grade{
		ID:        gradeID,
		StudentID: ug.StudentID,
		CourseID:  ug.CourseID,
		Grade:     ug.Grade,
		Feedback:  ug.Feedback,
	}
	if err := svc.school.PutGrade(g); err != nil {
		return school.Grade{}, pkgerrors.Wrap(err, "saving grade")
	}
	return g, nil
}
