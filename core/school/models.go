package school

// Record shapes mirror the seed document: a JSON object with five top-level
// arrays (users, students, courses, assignments, grades). Field names are part
// of the contract; existing seed data must keep loading.

type (
	// SeedUser is a demo user entry in the seed document. It pre-populates a
	// newly registered account's display name and relationship links.
	SeedUser struct {
		Username         string   `json:"username"`
		Password         string   `json:"password"`
		Role             string   `json:"role"`
		DisplayName      string   `json:"displayName"`
		GradeLevel       string   `json:"gradeLevel,omitempty"`
		StudentID        string   `json:"studentId,omitempty"`
		ChildrenIDs      []string `json:"childrenIds,omitempty"`
		TeacherCourseIDs []string `json:"teacherCourseIds,omitempty"`
	}

	Student struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		GradeLevel string   `json:"gradeLevel"`
		CourseIDs  []string `json:"courseIds"`
	}

	Course struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Assignment struct {
		ID          string `json:"id"`
		StudentID   string `json:"studentId"`
		CourseID    string `json:"courseId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Due         string `json:"due"` // YYYY-MM-DD
	}

	Grade struct {
		ID        string `json:"id"`
		StudentID string `json:"studentId"`
		CourseID  string `json:"courseId"`
		Grade     string `json:"grade"` // free text; "A-", "92%", ...
		Feedback  string `json:"feedback"`
	}

	// Snapshot is the whole domain model, loaded once at boot and re-persisted
	// in full on every successful mutation.
	Snapshot struct {
		Users       []SeedUser   `json:"users"`
		Students    []Student    `json:"students"`
		Courses     []Course     `json:"courses"`
		Assignments []Assignment `json:"assignments"`
		Grades      []Grade      `json:"grades"`
	}
)

func (s Student) EnrolledIn(courseID string) bool {
	for _, id := range s.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// Lookups degrade to !ok on dangling references; they never panic.

func (snap Snapshot) StudentByID(id string) (Student, bool) {
	for _, s := range snap.Students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

func (snap Snapshot) CourseByID(id string) (Course, bool) {
	for _, c := range snap.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

func (snap Snapshot) AssignmentByID(id string) (Assignment, bool) {
	for _, a := range snap.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

func (snap Snapshot) GradeByID(id string) (Grade, bool) {
	for _, g := range snap.Grades {
		if g.ID == id {
			return g, true
		}
	}
	return Grade{}, false
}

func (snap Snapshot) SeedUserByUsername(username string) (SeedUser, bool) {
	for _, u := range snap.Users {
		if u.Username == username {
			return u, true
		}
	}
	return SeedUser{}, false
}

func (snap Snapshot) SeedUserByRole(role string) (SeedUser, bool) {
	for _, u := range snap.Users {
		if u.Role == role {
			return u, true
		}
	}
	return SeedUser{}, false
}

// EnrolledCourses resolves a student's course ids, skipping dangling ones.
func (snap Snapshot) EnrolledCourses(s Student) []Course {
	courses := make([]Course, 0, len(s.CourseIDs))
	for _, id := range s.CourseIDs {
		if c, ok := snap.CourseByID(id); ok {
			courses = append(courses, c)
		}
	}
	return courses
}

// StudentsInCourse returns the roster of students enrolled in the course.
func (snap Snapshot) StudentsInCourse(courseID string) []Student {
	students := make([]Student, 0)
	for _, s := range snap.Students {
		if s.EnrolledIn(courseID) {
			students = append(students, s)
		}
	}
	return students
}

// StudentsTaught returns the students enrolled in any of the given courses,
// each student at most once, in collection order.
func (snap Snapshot) StudentsTaught(courseIDs []string) []Student {
	students := make([]Student, 0)
	for _, s := range snap.Students {
		for _, id := range courseIDs {
			if s.EnrolledIn(id) {
				students = append(students, s)
				break
			}
		}
	}
	return students
}
