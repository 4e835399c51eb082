package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blogem/campus-admin/models"
	"github.com/mattn/go-sqlite3"
)

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx the repositories need
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories struct holds all repository interfaces
type Repositories struct {
	Students StudentRepository
	Activity ActivityRepository
}

// NewRepositories creates repositories bound to q
func NewRepositories(q Querier, clock models.Clock) *Repositories {
	return &Repositories{
		Students: NewStudentRepository(q, clock),
		Activity: NewActivityRepository(q),
	}
}

// Store hands out repositories bound to a connection scoped to one call
type Store struct {
	db    *sql.DB
	clock models.Clock
}

// NewStore creates a store over db. A nil clock means models.NowPKT.
func NewStore(db *sql.DB, clock models.Clock) *Store {
	if clock == nil {
		clock = models.NowPKT
	}
	return &Store{db: db, clock: clock}
}

// Read runs fn against a connection that is released when fn returns
func (s *Store) Read(ctx context.Context, fn func(*Repositories) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(NewRepositories(conn, s.clock))
}

// Write runs fn inside a transaction. The transaction commits only if fn
// returns nil; errors, panics and context cancellation roll it back.
func (s *Store) Write(ctx context.Context, fn func(*Repositories) error) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(NewRepositories(tx, s.clock)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	committed = true
	return nil
}

// mapConstraintError turns unique constraint violations into ErrStudentConflict
func mapConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", models.ErrStudentConflict, err)
	}
	return err
}
