package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/localdb"
	testutil "github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (*records.Service, *school.Service, *localdb.DB) {
	t.Helper()
	schoolSvc, db := testutil.NewSchoolService(t)
	return records.NewService(schoolSvc), schoolSvc, db
}

func identities(t *testing.T, svc *records.Service) (records.StudentIdentity, records.ParentIdentity, records.TeacherIdentity) {
	t.Helper()
	s, err := svc.IdentityOf(account.Account{Username: "alice", Role: account.RoleStudent, StudentID: "s1"})
	require.NoError(t, err)
	p, err := svc.IdentityOf(account.Account{Username: "pdoe", Role: account.RoleParent, ChildrenIDs: []string{"s1", "s2"}})
	require.NoError(t, err)
	teach, err := svc.IdentityOf(account.Account{Username: "mrsmith", Role: account.RoleTeacher, TeacherCourseIDs: []string{"c1", "c3"}})
	require.NoError(t, err)
	return s.(records.StudentIdentity), p.(records.ParentIdentity), teach.(records.TeacherIdentity)
}

func assignmentIDs(items []school.Assignment) []string {
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return ids
}

func gradeIDs(items []school.Grade) []string {
	ids := make([]string, 0, len(items))
	for _, g := range items {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestService_visibility(t *testing.T) {
	svc, _, _ := setup(t)
	student, parent, teacher := identities(t, svc)

	// student sees exactly their own records
	assert.Equal(t, []string{"a1"}, assignmentIDs(svc.Assignments(student)))
	assert.Equal(t, []string{"g1"}, gradeIDs(svc.Grades(student)))

	// parent sees the union over children, never s3's records
	assert.ElementsMatch(t, []string{"a1", "a2"}, assignmentIDs(svc.Assignments(parent)))
	assert.ElementsMatch(t, []string{"g1", "g2"}, gradeIDs(svc.Grades(parent)))

	// teacher sees the taught-course roster: s1 (c1) and s2 (c3), never s3
	assert.ElementsMatch(t, []string{"a1", "a2"}, assignmentIDs(svc.Assignments(teacher)))
	assert.ElementsMatch(t, []string{"g1", "g2"}, gradeIDs(svc.Grades(teacher)))
}

func TestService_Dashboard(t *testing.T) {
	svc, _, _ := setup(t)
	student, parent, teacher := identities(t, svc)

	t.Run("student", func(t *testing.T) {
		d, ok := svc.Dashboard(student).(records.StudentDashboard)
		require.True(t, ok)
		assert.Equal(t, "Grade 5", d.GradeLevel)
		require.Len(t, d.Courses, 2)
		assert.Equal(t, "Math", d.Courses[0].Name)
		assert.Equal(t, "Science", d.Courses[1].Name)
	})

	t.Run("parent", func(t *testing.T) {
		d, ok := svc.Dashboard(parent).(records.ParentDashboard)
		require.True(t, ok)
		require.Len(t, d.Children, 2)
		assert.Equal(t, "Alice", d.Children[0].Student.Name)
		assert.Len(t, d.Children[0].Courses, 2)
		assert.Equal(t, "Bob", d.Children[1].Student.Name)
		assert.Len(t, d.Children[1].Courses, 1)
	})

	t.Run("teacher", func(t *testing.T) {
		d, ok := svc.Dashboard(teacher).(records.TeacherDashboard)
		require.True(t, ok)
		require.Len(t, d.Courses, 2)
		assert.Equal(t, "Math", d.Courses[0].Course.Name)
		require.Len(t, d.Courses[0].Students, 1)
		assert.Equal(t, "Alice", d.Courses[0].Students[0].Name)
		assert.Equal(t, "History", d.Courses[1].Course.Name)
		require.Len(t, d.Courses[1].Students, 1)
		assert.Equal(t, "Bob", d.Courses[1].Students[0].Name)
	})
}

func TestService_AllowedCourses(t *testing.T) {
	svc, _, _ := setup(t)
	_, _, teacher := identities(t, svc)

	courses := svc.AllowedCourses(teacher, "s1")
	require.Len(t, courses, 1) // teaches {c1,c3}, s1 enrolled in {c1,c2}
	assert.Equal(t, "c1", courses[0].ID)

	assert.Empty(t, svc.AllowedCourses(teacher, "s3")) // empty intersection
	assert.Empty(t, svc.AllowedCourses(teacher, "gone"))
}

func TestService_CreateAssignment(t *testing.T) {
	svc, schoolSvc, db := setup(t)
	student, parent, teacher := identities(t, svc)

	t.Run("non-teachers may not create", func(t *testing.T) {
		_, err := svc.CreateAssignment(student, records.NewAssignment{StudentID: "s1", CourseID: "c1", Title: "x", Description: "y", Due: "2024-05-01"})
		assert.Equal(t, records.ErrNotTeacher, err)
		_, err = svc.CreateAssignment(parent, records.NewAssignment{StudentID: "s1", CourseID: "c1", Title: "x", Description: "y", Due: "2024-05-01"})
		assert.Equal(t, records.ErrNotTeacher, err)
	})

	t.Run("blank required fields fail", func(t *testing.T) {
		_, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "s1", CourseID: "c1", Title: "  ", Description: "y", Due: "2024-05-01"})
		assert.Error(t, err)
		assert.Len(t, schoolSvc.Snapshot().Assignments, 3)
	})

	t.Run("malformed due date fails", func(t *testing.T) {
		_, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "s1", CourseID: "c1", Title: "x", Description: "y", Due: "tomorrow"})
		assert.Error(t, err)
	})

	t.Run("teacher does not teach the course", func(t *testing.T) {
		// s1 is enrolled in c2, but mrsmith does not teach it
		_, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "s1", CourseID: "c2", Title: "Essay", Description: "Write 500 words", Due: "2024-05-01"})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, schoolSvc.Snapshot().Assignments, 3)
	})

	t.Run("student not enrolled in the course", func(t *testing.T) {
		// mrsmith teaches c3, but s1 is not enrolled
		_, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "s1", CourseID: "c3", Title: "Essay", Description: "Write 500 words", Due: "2024-05-01"})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "gone", CourseID: "c1", Title: "Essay", Description: "Write 500 words", Due: "2024-05-01"})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("success is visible to teacher, student and parent, and persisted", func(t *testing.T) {
		a, err := svc.CreateAssignment(teacher, records.NewAssignment{StudentID: "s1", CourseID: "c1", Title: "Essay", Description: "Write 500 words", Due: "2024-05-01"})
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)

		assert.Contains(t, assignmentIDs(svc.Assignments(teacher)), a.ID)
		assert.Contains(t, assignmentIDs(svc.Assignments(student)), a.ID)
		assert.Contains(t, assignmentIDs(svc.Assignments(parent)), a.ID)

		reloaded := school.NewService(localdb.NewSnapshotRepository(db))
		require.NoError(t, reloaded.Load(func() (school.Snapshot, error) { return school.Snapshot{}, nil }))
		_, ok := reloaded.Snapshot().AssignmentByID(a.ID)
		assert.True(t, ok)
	})
}

func TestService_UpdateAssignment(t *testing.T) {
	svc, schoolSvc, _ := setup(t)
	student, _, teacher := identities(t, svc)

	payload := records.UpdateAssignment{StudentID: "s1", CourseID: "c1", Title: "Fractions II", Description: "Worksheet 2", Due: "2024-04-15"}

	t.Run("non-teachers may not update", func(t *testing.T) {
		_, err := svc.UpdateAssignment(student, "a1", payload)
		assert.Equal(t, records.ErrNotTeacher, err)
	})

	t.Run("unknown id leaves collections unchanged", func(t *testing.T) {
		_, err := svc.UpdateAssignment(teacher, "nope", payload)
		assert.Equal(t, records.ErrNotFound, err)
		assert.Len(t, schoolSvc.Snapshot().Assignments, 3)
	})

	t.Run("the NEW student and course pair is validated", func(t *testing.T) {
		// retarget a1 to s1/c2: enrolled but not taught
		bad := payload
		bad.CourseID = "c2"
		_, err := svc.UpdateAssignment(teacher, "a1", bad)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)

		orig, ok := schoolSvc.Snapshot().AssignmentByID("a1")
		require.True(t, ok)
		assert.Equal(t, "Fractions", orig.Title)
	})

	t.Run("success replaces fields in place", func(t *testing.T) {
		a, err := svc.UpdateAssignment(teacher, "a1", payload)
		require.NoError(t, err)
		assert.Equal(t, "a1", a.ID)
		assert.Equal(t, "Fractions II", a.Title)

		got, ok := schoolSvc.Snapshot().AssignmentByID("a1")
		require.True(t, ok)
		assert.Equal(t, "Worksheet 2", got.Description)
		assert.Len(t, schoolSvc.Snapshot().Assignments, 3)
	})

	t.Run("retargeting to another visible student works", func(t *testing.T) {
		moved := records.UpdateAssignment{StudentID: "s2", CourseID: "c3", Title: "Timeline II", Description: "Medieval", Due: "2024-04-20"}
		a, err := svc.UpdateAssignment(teacher, "a1", moved)
		require.NoError(t, err)
		assert.Equal(t, "s2", a.StudentID)
		assert.Equal(t, "c3", a.CourseID)
	})
}

func TestService_grades(t *testing.T) {
	svc, schoolSvc, _ := setup(t)
	student, _, teacher := identities(t, svc)

	t.Run("create requires teacher", func(t *testing.T) {
		_, err := svc.CreateGrade(student, records.NewGrade{StudentID: "s1", CourseID: "c1", Grade: "A"})
		assert.Equal(t, records.ErrNotTeacher, err)
	})

	t.Run("create validates enrollment and teaching", func(t *testing.T) {
		_, err := svc.CreateGrade(teacher, records.NewGrade{StudentID: "s3", CourseID: "c2", Grade: "A"})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, schoolSvc.Snapshot().Grades, 3)
	})

	t.Run("feedback may be empty", func(t *testing.T) {
		g, err := svc.CreateGrade(teacher, records.NewGrade{StudentID: "s1", CourseID: "c1", Grade: "B+"})
		require.NoError(t, err)
		assert.Empty(t, g.Feedback)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := svc.UpdateGrade(teacher, "nope", records.UpdateGrade{StudentID: "s1", CourseID: "c1", Grade: "A"})
		assert.Equal(t, records.ErrNotFound, err)
	})

	t.Run("update re-validates the new pair", func(t *testing.T) {
		_, err := svc.UpdateGrade(teacher, "g1", records.UpdateGrade{StudentID: "s3", CourseID: "c2", Grade: "A"})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)

		orig, ok := schoolSvc.Snapshot().GradeByID("g1")
		require.True(t, ok)
		assert.Equal(t, "A-", orig.Grade)
	})

	t.Run("update success", func(t *testing.T) {
		g, err := svc.UpdateGrade(teacher, "g1", records.UpdateGrade{StudentID: "s1", CourseID: "c1", Grade: "A", Feedback: "Improved"})
		require.NoError(t, err)
		assert.Equal(t, "g1", g.ID)

		got, ok := schoolSvc.Snapshot().GradeByID("g1")
		require.True(t, ok)
		assert.Equal(t, "A", got.Grade)
		assert.Equal(t, "Improved", got.Feedback)
	})
}
