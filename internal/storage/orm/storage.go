package orm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/domain/repository"
)

const slowQueryThreshold = 200 * time.Millisecond

var newDialector = func(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// Storage is the gorm-backed customer store.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

// New opens a gorm connection and ensures the customer table exists.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	db, err := gorm.Open(newDialector(dsn), &gorm.Config{
		Logger:                 newGormLogger(logger, gormlogger.Warn, slowQueryThreshold),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		storage.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		s.logger.Warn("close gorm connection", slog.String("error", err.Error()))
	}
}

// Customers returns the customer repository backed by this storage.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS customer (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            age INT NOT NULL,
            gender TEXT NOT NULL,
            profile_image_id TEXT UNIQUE
        )`
	if err := s.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *customerRepository) db(ctx context.Context) *gorm.DB {
	return r.storage.db.WithContext(ctx)
}

func (r *customerRepository) SelectAll(ctx context.Context) ([]model.Customer, error) {
	var records []CustomerRecord
	if err := r.db(ctx).Order("id").Limit(repository.MaxPageSize).Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]model.Customer, 0, len(records))
	for _, rec := range records {
		result = append(result, rec.toModel())
	}
	return result, nil
}

func (r *customerRepository) SelectByID(ctx context.Context, id int64) (model.Customer, bool, error) {
	return r.selectOne(ctx, "id = ?", id)
}

func (r *customerRepository) SelectByEmail(ctx context.Context, email string) (model.Customer, bool, error) {
	return r.selectOne(ctx, "email = ?", email)
}

func (r *customerRepository) selectOne(ctx context.Context, cond string, arg any) (model.Customer, bool, error) {
	var rec CustomerRecord
	if err := r.db(ctx).Where(cond, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Customer{}, false, nil
		}
		return model.Customer{}, false, err
	}
	return rec.toModel(), true, nil
}

func (r *customerRepository) Insert(ctx context.Context, customer model.Customer) (model.Customer, error) {
	rec := recordFromModel(customer)
	rec.ID = 0
	if err := r.db(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return model.Customer{}, fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
		}
		return model.Customer{}, err
	}
	return rec.toModel(), nil
}

func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *customerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *customerRepository) exists(ctx context.Context, cond string, arg any) (bool, error) {
	var count int64
	if err := r.db(ctx).Model(&CustomerRecord{}).Where(cond, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *customerRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db(ctx).Where("id = ?", id).Delete(&CustomerRecord{}).Error
}

// Update persists name, email and age with a single Updates call.
func (r *customerRepository) Update(ctx context.Context, customer model.Customer) error {
	err := r.db(ctx).Model(&CustomerRecord{}).Where("id = ?", customer.ID).Updates(map[string]any{
		"name":  customer.Name,
		"email": customer.Email,
		"age":   customer.Age,
	}).Error
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *customerRepository) UpdateProfileImageID(ctx context.Context, id int64, imageID string) error {
	return r.db(ctx).Model(&CustomerRecord{}).Where("id = ?", id).Update("profile_image_id", imageID).Error
}
