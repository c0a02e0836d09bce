package account

import (
	"github.com/trezcool/shule/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleParent, RoleTeacher}

// Account is a registered credential record, distinct from the seed document's
// demo users. The full record (password included, plaintext by design) is what
// gets persisted to the credential registry; API layers expose their own
// password-less views.
type Account struct {
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	Role             string   `json:"role"`
	DisplayName      string   `json:"displayName"`
	GradeLevel       string   `json:"gradeLevel,omitempty"`
	StudentID        string   `json:"studentId,omitempty"`
	ChildrenIDs      []string `json:"childrenIds,omitempty"`
	TeacherCourseIDs []string `json:"teacherCourseIds,omitempty"`
}

func (a Account) IsStudent() bool { return a.Role == RoleStudent }
func (a Account) IsParent() bool  { return a.Role == RoleParent }
func (a Account) IsTeacher() bool { return a.Role == RoleTeacher }

// NewAccount contains information needed to register a new Account.
type NewAccount struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student parent teacher"`
}

func (na *NewAccount) Validate() error {
	// usernames are case-sensitive; trim only, never lower
	na.Username = core.CleanString(na.Username)
	return core.Validate.Struct(na)
}
