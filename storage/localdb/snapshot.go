package localdb

import (
	"github.com/trezcool/shule/core/school"
)

type snapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) school.Repository {
	return &snapshotRepository{db: db}
}

func (repo *snapshotRepository) GetSnapshot() (school.Snapshot, bool, error) {
	var snap school.Snapshot
	ok, err := repo.db.ReadJSON(dataKey, &snap)
	if err != nil {
		return school.Snapshot{}, false, err
	}
	return snap, ok, nil
}

func (repo *snapshotRepository) SaveSnapshot(snap school.Snapshot) error {
	return repo.db.WriteJSON(dataKey, snap)
}
