package testutil

import (
	"testing"

	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/localdb"
)

// NewSnapshot returns the shared domain fixture:
//   - courses: c1 Math, c2 Science, c3 History
//   - students: s1 Alice {c1,c2}, s2 Bob {c3}, s3 Carol {c2}
//   - teacher mrsmith teaches {c1,c3}: sees s1 (c1) and s2 (c3), never s3
//   - parent pdoe guards {s1,s2}
//   - existing records: one assignment and one grade per student
func NewSnapshot() school.Snapshot {
	return school.Snapshot{
		Users: []school.SeedUser{
			{Username: "alice", Password: "pass1", Role: "student", DisplayName: "Alice A.", GradeLevel: "Grade 5", StudentID: "s1"},
			{Username: "pdoe", Password: "pass2", Role: "parent", DisplayName: "Pat Doe", ChildrenIDs: []string{"s1", "s2"}},
			{Username: "mrsmith", Password: "pass3", Role: "teacher", DisplayName: "Mr. Smith", TeacherCourseIDs: []string{"c1", "c3"}},
		},
		Students: []school.Student{
			{ID: "s1", Name: "Alice", GradeLevel: "Grade 5", CourseIDs: []string{"c1", "c2"}},
			{ID: "s2", Name: "Bob", GradeLevel: "Grade 3", CourseIDs: []string{"c3"}},
			{ID: "s3", Name: "Carol", GradeLevel: "Grade 7", CourseIDs: []string{"c2"}},
		},
		Courses: []school.Course{
			{ID: "c1", Name: "Math"},
			{ID: "c2", Name: "Science"},
			{ID: "c3", Name: "History"},
		},
		Assignments: []school.Assignment{
			{ID: "a1", StudentID: "s1", CourseID: "c1", Title: "Fractions", Description: "Worksheet 1", Due: "2024-04-01"},
			{ID: "a2", StudentID: "s2", CourseID: "c3", Title: "Timeline", Description: "Ancient Rome", Due: "2024-04-02"},
			{ID: "a3", StudentID: "s3", CourseID: "c2", Title: "Volcano", Description: "Build a model", Due: "2024-04-03"},
		},
		Grades: []school.Grade{
			{ID: "g1", StudentID: "s1", CourseID: "c1", Grade: "A-", Feedback: "Good work"},
			{ID: "g2", StudentID: "s2", CourseID: "c3", Grade: "B", Feedback: ""},
			{ID: "g3", StudentID: "s3", CourseID: "c2", Grade: "92%", Feedback: "Great model"},
		},
	}
}

// NewSchoolService loads a school.Service with the fixture snapshot over a
// temp-dir store.
func NewSchoolService(t *testing.T) (*school.Service, *localdb.DB) {
	t.Helper()
	db, err := localdb.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localdb.Open() failed: %v", err)
	}
	svc := school.NewService(localdb.NewSnapshotRepository(db))
	if err := svc.Load(func() (school.Snapshot, error) { return NewSnapshot(), nil }); err != nil {
		t.Fatalf("school.Load() failed: %v", err)
	}
	return svc, db
}

// CreateAccount registers a credential record directly in the repository.
func CreateAccount(t *testing.T, repo account.Repository, uname, pwd, role string) account.Account {
	t.Helper()
	acct, err := repo.CreateAccount(account.Account{
		Username:    uname,
		Password:    pwd,
		Role:        role,
		DisplayName: uname,
		ChildrenIDs: []string{},
	})
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}
