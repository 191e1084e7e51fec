package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"gearwear/internal/config"
	"gearwear/internal/gear"
	"gearwear/internal/store"
	"gearwear/internal/strava"
)

// ActivitySource is the slice of the Strava API the monitor needs. The
// concrete implementation is *strava.Client; tests substitute a fake.
type ActivitySource interface {
	GetAllActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]strava.Activity, error)
	GetLatestActivity(ctx context.Context) (*strava.Activity, error)
	GetAthlete(ctx context.Context) (*strava.Athlete, error)
	GetGear(ctx context.Context, gearID string) (*strava.Gear, error)
}

// Monitor is one tracking session: an activity source, the record store
// and the maintenance type catalog, bound together. All operations hang
// off it; there is no ambient global state.
type Monitor struct {
	store   *store.DB
	source  ActivitySource
	catalog *gear.TypeCatalog
	syncCfg config.SyncConfig
	log     *logrus.Logger

	// now is replaceable in tests
	now func() time.Time
}

// New creates a Monitor.
func New(db *store.DB, source ActivitySource, syncCfg config.SyncConfig, log *logrus.Logger) *Monitor {
	if log == nil {
		log = logrus.New()
	}
	return &Monitor{
		store:   db,
		source:  source,
		catalog: gear.NewTypeCatalog(),
		syncCfg: syncCfg,
		log:     log,
		now:     time.Now,
	}
}

// Catalog exposes the maintenance type catalog for registration and
// display.
func (m *Monitor) Catalog() *gear.TypeCatalog {
	return m.catalog
}

// Store exposes the underlying record store.
func (m *Monitor) Store() *store.DB {
	return m.store
}

// ClearActivities drops the activity cache and sync checkpoints so the
// next sync walks the full history.
func (m *Monitor) ClearActivities() error {
	if err := m.store.ClearActivities(); err != nil {
		return err
	}
	return m.store.ClearSyncState()
}

// ClearMaintenance drops all maintenance records and their snapshots.
func (m *Monitor) ClearMaintenance() error {
	return m.store.ClearMaintenance()
}

// ClearServiceIntervals drops all service intervals.
func (m *Monitor) ClearServiceIntervals() error {
	return m.store.ClearServiceIntervals()
}

// ClearComponents drops all components and their swap log.
func (m *Monitor) ClearComponents() error {
	return m.store.ClearComponents()
}
