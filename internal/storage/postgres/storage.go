package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
	"github.com/polkiloo/customers/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Customers returns the customer repository backed by this storage.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customer (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            age INT NOT NULL,
            gender TEXT NOT NULL,
            profile_image_id TEXT UNIQUE
        )`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const customerColumns = `id, name, email, password, age, gender, profile_image_id`

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Age, &c.Gender, &c.ProfileImageID)
	return c, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *customerRepository) SelectAll(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customer ORDER BY id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, repository.MaxPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *customerRepository) SelectByID(ctx context.Context, id int64) (model.Customer, bool, error) {
	const query = `SELECT ` + customerColumns + ` FROM customer WHERE id=$1`
	return r.selectOne(ctx, query, id)
}

func (r *customerRepository) SelectByEmail(ctx context.Context, email string) (model.Customer, bool, error) {
	const query = `SELECT ` + customerColumns + ` FROM customer WHERE email=$1`
	return r.selectOne(ctx, query, email)
}

func (r *customerRepository) selectOne(ctx context.Context, query string, arg any) (model.Customer, bool, error) {
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, false, nil
		}
		return model.Customer{}, false, err
	}
	return c, true, nil
}

func (r *customerRepository) Insert(ctx context.Context, customer model.Customer) (model.Customer, error) {
	const query = `INSERT INTO customer (name, email, password, age, gender) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.PasswordHash, customer.Age, customer.Gender,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Customer{}, fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customer WHERE email=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customer WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) DeleteByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM customer WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		r.storage.logger.Debug("delete matched no customer", slog.Int64("customer_id", id))
	}
	return nil
}

// Update writes name, email and age of the customer in a single statement.
func (r *customerRepository) Update(ctx context.Context, customer model.Customer) error {
	const query = `UPDATE customer SET name=$1, email=$2, age=$3 WHERE id=$4`
	_, err := r.storage.pool.Exec(ctx, query, customer.Name, customer.Email, customer.Age, customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already taken", domainErrors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *customerRepository) UpdateProfileImageID(ctx context.Context, id int64, imageID string) error {
	const query = `UPDATE customer SET profile_image_id=$1 WHERE id=$2`
	_, err := r.storage.pool.Exec(ctx, query, imageID, id)
	return err
}
