package localdb

import (
	"github.com/trezcool/shule/core/account"
)

type accountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) QueryAllAccounts() ([]account.Account, error) {
	var accts []account.Account
	if _, err := repo.db.ReadJSON(usersKey, &accts); err != nil {
		return nil, err
	}
	if accts == nil {
		accts = []account.Account{}
	}
	return accts, nil
}

func (repo *accountRepository) GetAccountByUsername(username string) (account.Account, error) {
	accts, err := repo.QueryAllAccounts()
	if err != nil {
		return account.Account{}, err
	}
	for _, acct := range accts {
		if acct.Username == username {
			return acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) CreateAccount(acct account.Account) (account.Account, error) {
	accts, err := repo.QueryAllAccounts()
	if err != nil {
		return account.Account{}, err
	}
	for _, existing := range accts {
		if existing.Username == acct.Username {
			return account.Account{}, account.ErrUsernameExists
		}
	}
	accts = append(accts, acct)
	if err := repo.db.WriteJSON(usersKey, accts); err != nil {
		return account.Account{}, err
	}
	return acct, nil
}

func (repo *accountRepository) SaveAccounts(accts []account.Account) error {
	return repo.db.WriteJSON(usersKey, accts)
}

func (repo *accountRepository) GetSessionUsername() (string, error) {
	username, ok := repo.db.ReadString(sessionKey)
	if !ok || username == "" {
		return "", account.ErrNoSession
	}
	return username, nil
}

func (repo *accountRepository) SetSessionUsername(username string) error {
	return repo.db.WriteString(sessionKey, username)
}

func (repo *accountRepository) ClearSession() error {
	return repo.db.Remove(sessionKey)
}
