package main

import (
	"fmt"

	"github.com/trezcool/shule/core/account"
)

// addAccount registers a new credential record; seed-record pre-population
// applies the same way it does for self-registration.
func (cli *commandLine) addAccount(uname, pwd, role string) error {
	acct, err := cli.acctSvc.Register(account.NewAccount{
		Username: uname,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", acct.Username, acct.Role)
	return nil
}

func (cli *commandLine) listAccounts() error {
	accts, err := cli.acctSvc.QueryAll()
	if err != nil {
		return err
	}
	for _, acct := range accts {
		fmt.Printf("%s\t%s\t%s\n", acct.Username, acct.Role, acct.DisplayName)
	}
	return nil
}
