package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ProjectID        string    `json:"projectId"`
	Title            string    `json:"title"`
	Owner            string    `json:"owner"`
	LatexCode        string    `json:"latexCode"`
	WorkspaceState   string    `json:"workspaceState"`
	CreationDate     time.Time `json:"creationDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	UserID           string    `json:"userId"`
}

type ProjectService struct {
	db *sql.DB
}

func NewProjectService(db *sql.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, userID, owner, title string) (*Project, error) {
	now := time.Now().UTC()
	p := &Project{
		ProjectID:        uuid.NewString(),
		Title:            title,
		Owner:            owner,
		CreationDate:     now,
		LastModifiedDate: now,
		UserID:           userID,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (project_id, title, owner, latex_code, workspace_state, creation_date, last_modified_date, user_id)
         VALUES ($1, $2, $3, '', '', $4, $5, $6)`,
		p.ProjectID, p.Title, p.Owner, p.CreationDate, p.LastModifiedDate, p.UserID,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) ListByUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, title, owner, latex_code, workspace_state, creation_date, last_modified_date, user_id
         FROM projects
         WHERE user_id = $1
         ORDER BY last_modified_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ProjectID, &p.Title, &p.Owner, &p.LatexCode, &p.WorkspaceState,
			&p.CreationDate, &p.LastModifiedDate, &p.UserID); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectService) Get(ctx context.Context, projectID string) (*Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx,
		`SELECT project_id, title, owner, latex_code, workspace_state, creation_date, last_modified_date, user_id
         FROM projects
         WHERE project_id = $1`,
		projectID,
	).Scan(&p.ProjectID, &p.Title, &p.Owner, &p.LatexCode, &p.WorkspaceState,
		&p.CreationDate, &p.LastModifiedDate, &p.UserID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveWorkspace stores the editor state and bumps the modification time.
func (s *ProjectService) SaveWorkspace(ctx context.Context, projectID, workspaceState, latexCode string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE projects
         SET workspace_state = $2, latex_code = $3, last_modified_date = $4
         WHERE project_id = $1`,
		projectID, workspaceState, latexCode, time.Now().UTC(),
	)
	return err
}

func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	return err
}

// IsMember reports whether the user owns the project. Collaborator rows would
// widen this check; access is owner-only for now.
func (s *ProjectService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
            SELECT 1 FROM projects WHERE project_id = $1 AND user_id = $2
        )`,
		projectID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
