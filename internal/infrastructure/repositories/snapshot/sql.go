package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"time"

	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRow is the mandi_snapshots table. SnapshotKey is unique, so the
// upsert below can only ever touch the "latest" row.
type SnapshotRow struct {
	ID          uint           `gorm:"primaryKey"`
	SnapshotKey string         `gorm:"size:32;not null;uniqueIndex"`
	Records     datatypes.JSON `gorm:"not null"`
	RefreshedAt time.Time      `gorm:"column:updated_at;not null"`
}

func (SnapshotRow) TableName() string {
	return "mandi_snapshots"
}

// SQLStore keeps the snapshot in a relational table through gorm.
// The *gorm.DB is shared with the other repositories and is not closed here.
type SQLStore struct {
	db    *gorm.DB
	clock clockwork.Clock
}

// NewSQLStore crea el store SQL
func NewSQLStore(db *gorm.DB, clock clockwork.Clock) *SQLStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SQLStore{db: db, clock: clock}
}

var _ interfaces.SnapshotStore = (*SQLStore)(nil)

// AutoMigrate creates the snapshot table
func (s *SQLStore) AutoMigrate() error {
	return s.db.AutoMigrate(&SnapshotRow{})
}

func (s *SQLStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	snap, err := s.read(ctx)
	observeRead(ctx, BackendSQL, snap, err)
	return snap, err
}

func (s *SQLStore) read(ctx context.Context) (*entities.Snapshot, error) {
	var row SnapshotRow
	err := s.db.WithContext(ctx).
		Where("snapshot_key = ?", entities.LatestSnapshotKey).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(BackendSQL, err)
	}

	var records []entities.PriceRecord
	if len(row.Records) > 0 {
		if err := decodeJSON(row.Records, &records); err != nil {
			return nil, readError(BackendSQL, err)
		}
	}

	return entities.NewSnapshot(records, row.RefreshedAt), nil
}

func (s *SQLStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	snap := entities.NewSnapshot(entities.CloneRecords(records), s.clock.Now().UTC().Truncate(time.Millisecond))

	payload, err := json.Marshal(snap.Records)
	if err != nil {
		err = writeError(BackendSQL, err)
		observeWrite(ctx, BackendSQL, nil, err)
		return nil, err
	}

	row := SnapshotRow{
		SnapshotKey: snap.Key,
		Records:     datatypes.JSON(payload),
		RefreshedAt: snap.UpdatedAt,
	}

	// INSERT ... ON CONFLICT (snapshot_key) DO UPDATE
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"records", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		err = writeError(BackendSQL, err)
		observeWrite(ctx, BackendSQL, nil, err)
		return nil, err
	}

	observeWrite(ctx, BackendSQL, snap, nil)
	return snap.Clone(), nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return nil
}
