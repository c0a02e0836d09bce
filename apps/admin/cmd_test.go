package main

import (
	"testing"

	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/storage/localdb"
	testutil "github.com/trezcool/shule/tests"
)

var acctRepo account.Repository

func setup(t *testing.T) *commandLine {
	schoolSvc, db := testutil.NewSchoolService(t)
	acctRepo = localdb.NewAccountRepository(db)
	return &commandLine{acctSvc: account.NewService(acctRepo, schoolSvc)}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_addAccount(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addaccount"}, wantErr: errHelp},
		{name: "username but no role", args: []string{"addaccount", "-username", "lol"}, wantErr: errHelp},
		{name: "username and role but no password", args: []string{"addaccount", "-username", "lol", "-role", "teacher"}, wantErr: errHelp},
		{name: "bad role", args: []string{"addaccount", "-username", "lol", "-role", "admin"}, extra: extra{pwd: "pwd"}, wantErr: nil},
		{name: "add teacher", args: []string{"addaccount", "-username", "newsmith", "-role", "teacher"}, extra: extra{pwd: "pwd"}},
		{name: "duplicate username", args: []string{"addaccount", "-username", "newsmith", "-role", "teacher"}, extra: extra{pwd: "pwd"}, wantErr: account.ErrUsernameExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			switch tt.name {
			case "bad role":
				if err == nil {
					t.Error("cli.run() expected a validation error")
				}
			default:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}

	// seed pre-population applies through the CLI too
	acct, err := acctRepo.GetAccountByUsername("newsmith")
	if err != nil {
		t.Fatalf("GetAccountByUsername() failed: %v", err)
	}
	if acct.DisplayName != "Mr. Smith" {
		t.Errorf("addAccount() displayName = %s, want Mr. Smith", acct.DisplayName)
	}
}

func Test_commandLine_listAccounts(t *testing.T) {
	cli := setup(t)
	testutil.CreateAccount(t, acctRepo, "someone", "pwd", account.RoleParent)

	if err := cli.run([]string{"admin", "listaccounts"}); err != nil {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}
