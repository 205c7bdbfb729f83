package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

const schema = `
CREATE TABLE IF NOT EXISTS operators (
	id        TEXT PRIMARY KEY,
	email     TEXT NOT NULL UNIQUE,
	pass_hash BYTEA NOT NULL,
	role      TEXT NOT NULL
)`

// PostgresStore keeps operator accounts in Postgres. It never holds
// inventory data.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects through the pgx driver and makes sure the operators
// table exists.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	s := NewPostgresStore(db)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := db.ExecContext(ctx, schema)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Create(ctx context.Context, email, password, role, id string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizePassword(password)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO operators (id, email, pass_hash, role)
			VALUES ($1, $2, $3, $4)
		`, id, normalizeEmail(email), hash, role)

		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	})
}

func (s *PostgresStore) Verify(ctx context.Context, email, password string) (Operator, error) {
	var op Operator
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, email, pass_hash, role
			FROM operators
			WHERE email = $1
		`, normalizeEmail(email)).Scan(&op.ID, &op.Email, &op.Hash, &op.Role)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Operator{}, ErrInvalidCredentials
	}
	if err != nil {
		return Operator{}, err
	}

	if err := bcrypt.CompareHashAndPassword(op.Hash, []byte(normalizePassword(password))); err != nil {
		return Operator{}, ErrInvalidCredentials
	}
	return op, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
