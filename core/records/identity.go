package records

import (
	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/school"
)

// Identity is the resolved, role-tagged view of an active account. Each
// variant carries exactly the relationships its role needs; access control
// dispatches over the variant instead of poking at optional account fields.
type Identity interface {
	Account() account.Account
	sealed()
}

type (
	StudentIdentity struct {
		Acct    account.Account
		Student school.Student
	}

	ParentIdentity struct {
		Acct     account.Account
		Children []school.Student
	}

	TeacherIdentity struct {
		Acct      account.Account
		CourseIDs []string
	}
)

func (id StudentIdentity) Account() account.Account { return id.Acct }
func (id ParentIdentity) Account() account.Account  { return id.Acct }
func (id TeacherIdentity) Account() account.Account { return id.Acct }

func (StudentIdentity) sealed() {}
func (ParentIdentity) sealed()  {}
func (TeacherIdentity) sealed() {}

func (id TeacherIdentity) Teaches(courseID string) bool {
	for _, cid := range id.CourseIDs {
		if cid == courseID {
			return true
		}
	}
	return false
}

// IdentityOf resolves an account's relationship links against the current
// snapshot. A student account whose self-link is missing or dangling is an
// error, never a silent fallback to some other student. Parents' dangling
// child ids are skipped.
func (svc *Service) IdentityOf(acct account.Account) (Identity, error) {
	snap := svc.school.Snapshot()

	switch acct.Role {
	case account.RoleStudent:
		if acct.StudentID == "" {
			return nil, ErrStudentNotLinked
		}
		student, ok := snap.StudentByID(acct.StudentID)
		if !ok {
			return nil, ErrStudentNotLinked
		}
		return StudentIdentity{Acct: acct, Student: student}, nil

	case account.RoleParent:
		children := make([]school.Student, 0, len(acct.ChildrenIDs))
		for _, id := range acct.ChildrenIDs {
			if s, ok := snap.StudentByID(id); ok {
				children = append(children, s)
			}
		}
		return ParentIdentity{Acct: acct, Children: children}, nil

	case account.RoleTeacher:
		return TeacherIdentity{Acct: acct, CourseIDs: acct.TeacherCourseIDs}, nil
	}
	return nil, ErrUnknownRole
}
