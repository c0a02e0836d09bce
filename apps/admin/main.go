package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/storage/localdb"
)

func main() {
	db, err := localdb.Open(filepath.Join(core.Getwd(), core.Conf.GetString("dataDir")))
	if err != nil {
		log.Fatal(err)
	}

	schoolSvc := school.NewService(localdb.NewSnapshotRepository(db))
	if err := schoolSvc.Load(func() (school.Snapshot, error) { return school.Snapshot{}, nil }); err != nil {
		log.Fatal(err)
	}
	acctSvc := account.NewService(localdb.NewAccountRepository(db), schoolSvc)

	cli := &commandLine{acctSvc: acctSvc}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		log.Fatal(err)
	}
}
