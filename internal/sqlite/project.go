package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/repository"
)

var _ repository.Store = (*ProjectStore)(nil)

const projectColumns = `
	project_id, project_name, bu, project_type, classification_media,
	assigned_date, designer, qc_reviewer, content_status,
	gd_rework, poc_rework, comments`

// ProjectStore implements repository.Store for SQLite
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (record.Record, error) {
	var rec record.Record
	err := row.Scan(
		&rec.ProjectID,
		&rec.ProjectName,
		&rec.BU,
		&rec.ProjectType,
		&rec.ClassificationMedia,
		&rec.AssignedDate,
		&rec.Designer,
		&rec.QCReviewer,
		&rec.ContentStatus,
		&rec.GDRework,
		&rec.POCRework,
		&rec.Comments,
	)
	return rec, err
}

// List returns every project in insertion order
func (s *ProjectStore) List(ctx context.Context) ([]record.Record, error) {
	query := `SELECT` + projectColumns + ` FROM projects ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return records, nil
}

// Get retrieves a project by ID
func (s *ProjectStore) Get(ctx context.Context, id string) (*record.Record, error) {
	return getProject(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProject(ctx context.Context, q queryRower, id string) (*record.Record, error) {
	query := `SELECT` + projectColumns + ` FROM projects WHERE project_id = ?`

	rec, err := scanProject(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &rec, nil
}

// Insert appends a project and bumps the store revision atomically
func (s *ProjectStore) Insert(ctx context.Context, rec record.Record) (*record.Record, error) {
	if rec.ProjectID == "" {
		return nil, repository.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		rec.ProjectID,
		rec.ProjectName,
		rec.BU,
		rec.ProjectType,
		rec.ClassificationMedia,
		rec.AssignedDate,
		rec.Designer,
		rec.QCReviewer,
		rec.ContentStatus,
		rec.GDRework,
		rec.POCRework,
		rec.Comments,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateID
		}
		if isCheckViolation(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	if err := bumpRevision(ctx, tx); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &rec, nil
}

// Update replaces every mutable field of a project by name
func (s *ProjectStore) Update(ctx context.Context, id string, fields record.Fields) (*record.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE projects
		SET project_name = ?, bu = ?, project_type = ?, classification_media = ?,
		    assigned_date = ?, designer = ?, qc_reviewer = ?, content_status = ?,
		    gd_rework = ?, poc_rework = ?, comments = ?
		WHERE project_id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		fields.ProjectName,
		fields.BU,
		fields.ProjectType,
		fields.ClassificationMedia,
		fields.AssignedDate,
		fields.Designer,
		fields.QCReviewer,
		fields.ContentStatus,
		fields.GDRework,
		fields.POCRework,
		fields.Comments,
		id,
	)
	if err != nil {
		if isCheckViolation(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	if err := bumpRevision(ctx, tx); err != nil {
		return nil, err
	}

	updated, err := getProject(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// GenerateID returns a project ID not present in the table
func (s *ProjectStore) GenerateID(ctx context.Context) (string, error) {
	return repository.GenerateUnusedID(func(id string) (bool, error) {
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM projects WHERE project_id = ?)`, id).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check project id: %w", err)
		}
		return exists, nil
	})
}

// Revision returns the current store revision
func (s *ProjectStore) Revision(ctx context.Context) (int64, error) {
	var revision int64
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM store_revision WHERE id = 1`).Scan(&revision)
	if err != nil {
		return 0, fmt.Errorf("failed to get revision: %w", err)
	}
	return revision, nil
}

func bumpRevision(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `UPDATE store_revision SET revision = revision + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to bump revision: %w", err)
	}
	return nil
}
