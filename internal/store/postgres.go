package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/espace-client/backend/internal/models"
)

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore handles user records in PostgreSQL.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the users table if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email         VARCHAR(255) UNIQUE NOT NULL,
			password      VARCHAR(255) NOT NULL,
			nom           VARCHAR(100) NOT NULL DEFAULT '',
			prenom        VARCHAR(100) NOT NULL DEFAULT '',
			datenaissance VARCHAR(30)  NOT NULL DEFAULT '',
			telephone     VARCHAR(30)  NOT NULL DEFAULT '',
			adresse       VARCHAR(255) NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	return err
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password, nom, prenom, datenaissance, telephone, adresse, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Nom, &u.Prenom, &u.DateNaissance,
		&u.Telephone, &u.Adresse, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	created := *u
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password, nom, prenom, datenaissance, telephone, adresse)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		u.Email, u.Password, u.Nom, u.Prenom, u.DateNaissance, u.Telephone, u.Adresse,
	).Scan(&created.ID, &created.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) UpdateByEmail(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`UPDATE users
		 SET nom = $1, prenom = $2, datenaissance = $3, telephone = $4, adresse = $5, password = $6
		 WHERE email = $7
		 RETURNING id, email, password, nom, prenom, datenaissance, telephone, adresse, created_at`,
		upd.Nom, upd.Prenom, upd.DateNaissance, upd.Telephone, upd.Adresse, upd.Password, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Nom, &u.Prenom, &u.DateNaissance,
		&u.Telephone, &u.Adresse, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
