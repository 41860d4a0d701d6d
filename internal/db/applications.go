package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_description, company_name, skills, resume_data, chat_history, created_at, updated_at`

func scanApplication(row pgx.Row) (*SavedApplication, error) {
	var a SavedApplication
	var resume, chat []byte
	if err := row.Scan(&a.ID, &a.JobDescription, &a.CompanyName, &a.Skills, &resume, &chat, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ResumeData = resume
	a.ChatHistory = chat
	if a.Skills == nil {
		a.Skills = []string{}
	}
	return &a, nil
}

// SaveApplication inserts a saved application and returns the stored row
func (db *DB) SaveApplication(ctx context.Context, input *ApplicationCreateInput) (*SavedApplication, error) {
	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}
	resume := []byte(input.ResumeData)
	if len(resume) == 0 {
		resume = []byte("{}")
	}
	chat := []byte(input.ChatHistory)
	if len(chat) == 0 {
		chat = []byte("[]")
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO saved_applications (job_description, company_name, skills, resume_data, chat_history)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+applicationColumns,
		input.JobDescription, input.CompanyName, skills, resume, chat,
	)
	app, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// GetApplication retrieves a saved application by ID. Returns nil, nil when it does not exist.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*SavedApplication, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM saved_applications WHERE id = $1`,
		id,
	)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplications returns all saved applications, newest first
func (db *DB) ListApplications(ctx context.Context) ([]SavedApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM saved_applications ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []SavedApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListApplicationSkills returns only the skills of every saved application
func (db *DB) ListApplicationSkills(ctx context.Context) ([]ApplicationSkills, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_name, skills FROM saved_applications ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list application skills: %w", err)
	}
	defer rows.Close()

	var out []ApplicationSkills
	for rows.Next() {
		var s ApplicationSkills
		if err := rows.Scan(&s.ID, &s.CompanyName, &s.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan application skills: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteApplication removes a saved application. Returns false when it did not exist.
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM saved_applications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
