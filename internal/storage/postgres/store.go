// Package postgres is the relational storage backend built on gorm. It runs on
// PostgreSQL in production and on sqlite in tests.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountingDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/accounting"
	crmDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/crm"
	hrDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/hr"
	marketplaceDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/marketplace"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"gorm.io/gorm"
)

var _ storage.Storage = (*Store)(nil)

// Store implements storage.Storage with gorm. Open the *gorm.DB with
// TranslateError enabled so unique violations surface as storage.ErrConflict.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Models lists every table the store touches, in dependency order.
func Models() []any {
	return []any{
		&userDatamodel.User{},
		&userDatamodel.Session{},
		&crmDatamodel.Customer{},
		&crmDatamodel.Complaint{},
		&hrDatamodel.Department{},
		&hrDatamodel.Employee{},
		&hrDatamodel.Team{},
		&hrDatamodel.TeamMember{},
		&marketplaceDatamodel.Product{},
		&operationsDatamodel.Project{},
		&operationsDatamodel.Task{},
		&operationsDatamodel.Meeting{},
		&accountingDatamodel.FinancialRecord{},
		&accountingDatamodel.Budget{},
	}
}

// AutoMigrate creates or updates the schema from the row types. The goose
// migrations are the source of truth in production.
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(Models()...)
}

func (s *Store) PingContext(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ----------------- HELPERS -----------------

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	default:
		return err
	}
}

func get[T any](ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func find[T any](ctx context.Context, q *gorm.DB) ([]*T, error) {
	rows := make([]*T, 0)
	if err := q.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func create[T any](ctx context.Context, db *gorm.DB, row *T) (*T, error) {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translate(err)
	}
	return row, nil
}

// update merges the patch in Go and writes every column back, so both
// backends share one merge implementation.
func update[T any](ctx context.Context, db *gorm.DB, id int64, patch storage.Patch) (*T, error) {
	current, err := get[T](ctx, db, id)
	if err != nil {
		return nil, err
	}
	merged, err := storage.Merge(current, patch)
	if err != nil {
		return nil, err
	}
	return save(ctx, db, merged)
}

func save[T any](ctx context.Context, db *gorm.DB, row *T) (*T, error) {
	res := db.WithContext(ctx).Model(row).Select("*").Omit("id").Updates(row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return row, nil
}

func remove[T any](ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func owned(db *gorm.DB, model any, ownerID int64) *gorm.DB {
	return db.Model(model).Where("user_id = ?", ownerID)
}

func whereInt(q *gorm.DB, column string, v *int64) *gorm.DB {
	if v == nil {
		return q
	}
	return q.Where(column+" = ?", *v)
}

func whereString(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return q
	}
	return q.Where(column+" = ?", *v)
}

func topN[T any](ctx context.Context, db *gorm.DB, ownerID int64, column string, limit int) ([]*T, error) {
	if limit <= 0 {
		limit = storage.DefaultTopLimit
	}
	rows := make([]*T, 0, limit)
	err := owned(db.WithContext(ctx), new(T), ownerID).
		Order(fmt.Sprintf("COALESCE(%s, 0) DESC", column)).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
