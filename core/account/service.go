package account

import (
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

var (
	// errors
	ErrNotFound           = errors.New("account not found")
	ErrUsernameExists     = errors.New("an account with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

type (
	Repository interface {
		QueryAllAccounts() ([]Account, error)
		// GetAccountByUsername does a case-sensitive exact match.
		GetAccountByUsername(username string) (Account, error)
		CreateAccount(acct Account) (Account, error)
		SaveAccounts(accts []Account) error

		// The session marker is a raw username string, persisted separately
		// from the registry.
		GetSessionUsername() (string, error)
		SetSessionUsername(username string) error
		ClearSession() error
	}

	Service struct {
		repo   Repository
		school *school.Service

		mu     sync.RWMutex
		active *Account
	}
)

func NewService(repo Repository, schoolSvc *school.Service) *Service {
	return &Service{repo: repo, school: schoolSvc}
}

// Register appends a new credential record to the registry. A matching seed
// record (exact username first, then role) pre-populates the display name and
// relationship links. It does not log the account in.
func (svc *Service) Register(na NewAccount) (Account, error) {
	if err := na.Validate(); err != nil {
		return Account{}, err
	}

	if _, err := svc.repo.GetAccountByUsername(na.Username); err == nil {
		return Account{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return Account{}, pkgerrors.Wrap(err, "checking username uniqueness")
	}

	acct := Account{
		Username:    na.Username,
		Password:    na.Password,
		Role:        na.Role,
		DisplayName: na.Username,
		ChildrenIDs: []string{},
	}
	snap := svc.school.Snapshot()
	seed, ok := snap.SeedUserByUsername(na.Username)
	if !ok {
		seed, ok = snap.SeedUserByRole(na.Role)
	}
	if ok {
		if seed.DisplayName != "" {
			acct.DisplayName = seed.DisplayName
		}
		acct.GradeLevel = seed.GradeLevel
		acct.StudentID = seed.StudentID
		if seed.ChildrenIDs != nil {
			acct.ChildrenIDs = seed.ChildrenIDs
		}
		acct.TeacherCourseIDs = seed.TeacherCourseIDs
	}

	return svc.repo.CreateAccount(acct)
}

// Authenticate matches username and password exactly (case-sensitive) against
// the registry, marks the account as the active session and persists the
// session marker.
func (svc *Service) Authenticate(username, password string) (Account, error) {
	acct, err := svc.repo.GetAccountByUsername(username)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, pkgerrors.Wrap(err, "finding account by username")
	}
	if acct.Password != password {
		return Account{}, ErrInvalidCredentials
	}

	if err := svc.repo.SetSessionUsername(acct.Username); err != nil {
		return Account{}, pkgerrors.Wrap(err, "persisting session marker")
	}
	svc.setActive(&acct)
	return acct, nil
}

// Restore resolves the persisted session marker against the registry.
// Absent or unresolvable markers yield ErrNoSession.
func (svc *Service) Restore() (Account, error) {
	username, err := svc.repo.GetSessionUsername()
	if err != nil {
		if err == ErrNoSession {
			return Account{}, ErrNoSession
		}
		return Account{}, pkgerrors.Wrap(err, "reading session marker")
	}
	acct, err := svc.repo.GetAccountByUsername(username)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrNoSession
		}
		return Account{}, pkgerrors.Wrap(err, "resolving session account")
	}
	svc.setActive(&acct)
	return acct, nil
}

// Current returns the in-memory active account, if any.
func (svc *Service) Current() (Account, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if svc.active == nil {
		return Account{}, ErrNoSession
	}
	return *svc.active, nil
}

// Logout clears the session marker and the in-memory active account.
func (svc *Service) Logout() error {
	svc.setActive(nil)
	return pkgerrors.Wrap(svc.repo.ClearSession(), "clearing session marker")
}

func (svc *Service) QueryAll() ([]Account, error) {
	return svc.repo.QueryAllAccounts()
}

// SeedRegistry copies the seed document's users into the credential registry
// on first boot (empty registry only), so demo credentials work out of the box.
func (svc *Service) SeedRegistry() error {
	accts, err := svc.repo.QueryAllAccounts()
	if err != nil {
		return pkgerrors.Wrap(err, "reading registry")
	}
	if len(accts) > 0 {
		return nil
	}

	seeds := svc.school.Snapshot().Users
	if len(seeds) == 0 {
		return nil
	}
	accts = make([]Account, 0, len(seeds))
	for _, u := range seeds {
		children := u.ChildrenIDs
		if children == nil {
			children = []string{}
		}
		accts = append(accts, Account{
			Username:         u.Username,
			Password:         u.Password,
			Role:             u.Role,
			DisplayName:      u.DisplayName,
			GradeLevel:       u.GradeLevel,
			StudentID:        u.StudentID,
			ChildrenIDs:      children,
			TeacherCourseIDs: u.TeacherCourseIDs,
		})
	}
	return pkgerrors.Wrap(svc.repo.SaveAccounts(accts), "seeding registry")
}

func (svc *Service) setActive(acct *Account) {
	svc.mu.Lock()
	svc.active = acct
	svc.mu.Unlock()
}
