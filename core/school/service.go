package school

import (
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

var ErrNotFound = errors.New("record not found")

type (
	// Repository persists the override snapshot that supersedes the seed
	// document after the first mutation.
	Repository interface {
		// GetSnapshot returns the persisted override, if any.
		GetSnapshot() (Snapshot, bool, error)
		SaveSnapshot(snap Snapshot) error
	}

	Service struct {
		repo Repository
		mu   sync.RWMutex
		snap Snapshot
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load populates the model: a persisted override wins over the seed document;
// a failing fetch degrades to an empty model so the app still reaches the
// landing state.
func (svc *Service) Load(fetch func() (Snapshot, error)) error {
	override, ok, err := svc.repo.GetSnapshot()
	if err != nil {
		return pkgerrors.Wrap(err, "reading override snapshot")
	}
	if ok {
		svc.mu.Lock()
		svc.snap = override
		svc.mu.Unlock()
		return nil
	}

	snap, err := fetch()
	if err != nil {
		snap = Snapshot{}
	}
	svc.mu.Lock()
	svc.snap = snap
	svc.mu.Unlock()
	return nil
}

// Snapshot returns the current model.
func (svc *Service) Snapshot() Snapshot {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.snap
}

// Replace swaps in a whole new snapshot and persists it.
func (svc *Service) Replace(snap Snapshot) error {
	svc.mu.Lock()
	svc.snap = snap
	svc.mu.Unlock()
	return pkgerrors.Wrap(svc.repo.SaveSnapshot(snap), "persisting snapshot")
}

func (svc *Service) Student(id string) (Student, error) {
	if s, ok := svc.Snapshot().StudentByID(id); ok {
		return s, nil
	}
	return Student{}, ErrNotFound
}

func (svc *Service) Course(id string) (Course, error) {
	if c, ok := svc.Snapshot().CourseByID(id); ok {
		return c, nil
	}
	return Course{}, ErrNotFound
}

func (svc *Service) Assignment(id string) (Assignment, error) {
	if a, ok := svc.Snapshot().AssignmentByID(id); ok {
		return a, nil
	}
	return Assignment{}, ErrNotFound
}

func (svc *Service) Grade(id string) (Grade, error) {
	if g, ok := svc.Snapshot().GradeByID(id); ok {
		return g, nil
	}
	return Grade{}, ErrNotFound
}

// PutAssignment appends the assignment, or replaces it in place when the id
// already exists, then re-persists the full snapshot.
func (svc *Service) PutAssignment(a Assignment) error {
	svc.mu.Lock()
	replaced := false
	for i := range svc.snap.Assignments {
		if svc.snap.Assignments[i].ID == a.ID {
			svc.snap.Assignments[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		svc.snap.Assignments = append(svc.snap.Assignments, a)
	}
	snap := svc.snap
	svc.mu.Unlock()
	return pkgerrors.Wrap(svc.repo.SaveSnapshot(snap), "persisting snapshot")
}

// PutGrade appends or replaces the grade, then re-persists the full snapshot.
func (svc *Service) PutGrade(g Grade) error {
	svc.mu.Lock()
	replaced := false
	for i := range svc.snap.Grades {
		if svc.snap.Grades[i].ID == g.ID {
			svc.snap.Grades[i] = g
			replaced = true
			break
		}
	}
	if !replaced {
		svc.snap.Grades = append(svc.snap.Grades, g)
	}
	snap := svc.snap
	svc.mu.Unlock()
	return pkgerrors.Wrap(svc.repo.SaveSnapshot(snap), "persisting snapshot")
}
