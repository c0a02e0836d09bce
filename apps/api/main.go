package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/records"
	"github.com/trezcool/shule/core/school"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/localdb"
)

func main() {
	logger, err := logsvc.NewZapLogger(core.Conf.GetBool("debug"))
	errAndDie(err)
	defer func() { _ = logger.Sync() }()

	// set up local persistence
	db, err := localdb.Open(filepath.Join(core.Getwd(), core.Conf.GetString("dataDir")))
	errAndDie(err)

	// load the domain model: persisted override wins, then the seed document,
	// then an empty model
	schoolSvc := school.NewService(localdb.NewSnapshotRepository(db))
	errAndDie(schoolSvc.Load(fetchSeedDocument))

	// set up services
	acctSvc := account.NewService(localdb.NewAccountRepository(db), schoolSvc)
	if err := acctSvc.SeedRegistry(); err != nil {
		logger.Warn("seeding credential registry", err)
	}
	if acct, err := acctSvc.Restore(); err == nil {
		logger.Info("session restored", map[string]interface{}{"username": acct.Username, "role": acct.Role})
	}
	recSvc := records.NewService(schoolSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       core.Conf.GetString("serverAddr"),
			Logger:     logger,
			AccountSvc: acctSvc,
			RecordsSvc: recSvc,
		},
	)
	app.Start()
}

// fetchSeedDocument loads the seed document from dataURL when set, falling
// back to the local dataFile. Callers degrade failures to an empty model.
func fetchSeedDocument() (school.Snapshot, error) {
	var snap school.Snapshot

	if url := core.Conf.GetString("dataURL"); url != "" {
		client := http.Client{Timeout: 10 * time.Second}
		res, err := client.Get(url)
		if err != nil {
			return snap, errors.Wrap(err, "fetching seed document")
		}
		defer func() { _ = res.Body.Close() }()
		if res.StatusCode != http.StatusOK {
			return snap, errors.Errorf("fetching seed document: %s", res.Status)
		}
		b, err := io.ReadAll(res.Body)
		if err != nil {
			return snap, errors.Wrap(err, "reading seed document")
		}
		return snap, errors.Wrap(json.Unmarshal(b, &snap), "parsing seed document")
	}

	b, err := os.ReadFile(filepath.Join(core.Getwd(), core.Conf.GetString("dataFile")))
	if err != nil {
		return snap, errors.Wrap(err, "reading seed document")
	}
	return snap, errors.Wrap(json.Unmarshal(b, &snap), "parsing seed document")
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
