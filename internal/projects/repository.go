package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists projects in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, title, description, type, status, start_date, end_date, budget, actual_cost, progress,
manager_id, team_members, deliverables, risks, mitigation, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Status, &p.StartDate, &p.EndDate,
		&p.Budget, &p.ActualCost, &p.Progress, &p.ManagerID, &p.TeamMembers, &p.Deliverables,
		&p.Risks, &p.Mitigation, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns projects matching the filter, newest start first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+`
FROM projects
WHERE ($1 = '' OR type = $1)
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR manager_id = $3)
  AND ($4 = '' OR title ILIKE '%' || $4 || '%')
ORDER BY start_date DESC
LIMIT 500`, string(filter.Type), string(filter.Status), filter.ManagerID, filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Get fetches one project by id.
func (r *Repository) Get(ctx context.Context, id string) (Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, shared.ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// Create inserts a new project.
func (r *Repository) Create(ctx context.Context, p Project) (Project, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO projects (id, title, description, type, status, start_date, end_date,
budget, actual_cost, progress, manager_id, team_members, deliverables, risks, mitigation, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)`,
		p.ID, p.Title, p.Description, string(p.Type), string(p.Status), p.StartDate, p.EndDate,
		p.Budget, p.ActualCost, p.Progress, p.ManagerID, p.TeamMembers, p.Deliverables, p.Risks, p.Mitigation, now)
	if err != nil {
		return Project{}, err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Update overwrites the mutable fields of a project.
func (r *Repository) Update(ctx context.Context, p Project) (Project, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET title=$2, description=$3, type=$4, status=$5, start_date=$6,
end_date=$7, budget=$8, actual_cost=$9, progress=$10, manager_id=$11, team_members=$12, deliverables=$13,
risks=$14, mitigation=$15, updated_at=NOW()
WHERE id=$1`,
		p.ID, p.Title, p.Description, string(p.Type), string(p.Status), p.StartDate, p.EndDate,
		p.Budget, p.ActualCost, p.Progress, p.ManagerID, p.TeamMembers, p.Deliverables, p.Risks, p.Mitigation)
	if err != nil {
		return Project{}, err
	}
	if tag.RowsAffected() == 0 {
		return Project{}, shared.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

// SetProgress updates the completion percentage, marking the project
// completed at 100.
func (r *Repository) SetProgress(ctx context.Context, id string, progress int, status Status) (Project, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET progress=$2, status=$3, updated_at=NOW() WHERE id=$1`,
		id, progress, string(status))
	if err != nil {
		return Project{}, err
	}
	if tag.RowsAffected() == 0 {
		return Project{}, shared.ErrNotFound
	}
	return r.Get(ctx, id)
}
