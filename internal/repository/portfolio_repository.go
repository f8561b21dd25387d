package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

// PortfolioRepository stores the per-student profile sub-resources:
// skills, projects and achievements.
type PortfolioRepository interface {
	ListSkills(ctx context.Context, userID string) ([]models.Skill, error)
	AddSkill(ctx context.Context, skill *models.Skill) error
	DeleteSkill(ctx context.Context, id, userID string) (bool, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	AddProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id, userID string, req *models.UpdateProjectRequest) (bool, error)
	DeleteProject(ctx context.Context, id, userID string) (bool, error)
	GetOngoingProject(ctx context.Context, userID string) (*models.Project, error)
	ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	AddAchievement(ctx context.Context, achievement *models.Achievement) error
	DeleteAchievement(ctx context.Context, id, userID string) (bool, error)
}

type portfolioRepository struct {
	*PostgresRepository
}

func NewPortfolioRepository(db *sql.DB, logger zerolog.Logger) PortfolioRepository {
	return &portfolioRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *portfolioRepository) ListSkills(ctx context.Context, userID string) ([]models.Skill, error) {
	query := `
		SELECT id, user_id, skill_name, category, proficiency, created_at
		FROM skills
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		var skill models.Skill
		err := rows.Scan(
			&skill.ID,
			&skill.UserID,
			&skill.SkillName,
			&skill.Category,
			&skill.Proficiency,
			&skill.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

func (r *portfolioRepository) AddSkill(ctx context.Context, skill *models.Skill) error {
	query := `
		INSERT INTO skills (id, user_id, skill_name, category, proficiency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		skill.ID,
		skill.UserID,
		skill.SkillName,
		skill.Category,
		skill.Proficiency,
		skill.CreatedAt,
	)

	return err
}

func (r *portfolioRepository) DeleteSkill(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM skills WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *portfolioRepository) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	query := `
		SELECT id, user_id, title, description, tech_stack, status, is_ongoing,
		       start_date, end_date, project_url, github_url, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY is_ongoing DESC, start_date DESC NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

func (r *portfolioRepository) AddProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects
			(id, user_id, title, description, tech_stack, status, is_ongoing,
			 start_date, end_date, project_url, github_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.TechStack,
		project.Status,
		project.IsOngoing,
		project.StartDate,
		project.EndDate,
		project.ProjectURL,
		project.GithubURL,
		project.CreatedAt,
	)

	return err
}

func (r *portfolioRepository) UpdateProject(ctx context.Context, id, userID string, req *models.UpdateProjectRequest) (bool, error) {
	query := `
		UPDATE projects
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    tech_stack = COALESCE($3, tech_stack),
		    status = COALESCE($4, status),
		    is_ongoing = COALESCE($5, is_ongoing),
		    start_date = COALESCE($6, start_date),
		    end_date = COALESCE($7, end_date),
		    project_url = COALESCE($8, project_url),
		    github_url = COALESCE($9, github_url)
		WHERE id = $10 AND user_id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		req.Title,
		req.Description,
		req.TechStack,
		req.Status,
		req.IsOngoing,
		req.StartDate,
		req.EndDate,
		req.ProjectURL,
		req.GithubURL,
		id,
		userID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *portfolioRepository) DeleteProject(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *portfolioRepository) GetOngoingProject(ctx context.Context, userID string) (*models.Project, error) {
	query := `
		SELECT id, user_id, title, description, tech_stack, status, is_ongoing,
		       start_date, end_date, project_url, github_url, created_at
		FROM projects
		WHERE user_id = $1 AND is_ongoing = TRUE
		ORDER BY start_date DESC NULLS LAST
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query, userID)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *portfolioRepository) ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	query := `
		SELECT id, user_id, title, type, issuer, date_achieved, description, certificate_url, created_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY date_achieved DESC NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var achievement models.Achievement
		err := rows.Scan(
			&achievement.ID,
			&achievement.UserID,
			&achievement.Title,
			&achievement.Type,
			&achievement.Issuer,
			&achievement.DateAchieved,
			&achievement.Description,
			&achievement.CertificateURL,
			&achievement.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, achievement)
	}

	return achievements, rows.Err()
}

func (r *portfolioRepository) AddAchievement(ctx context.Context, achievement *models.Achievement) error {
	query := `
		INSERT INTO achievements
			(id, user_id, title, type, issuer, date_achieved, description, certificate_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.Title,
		achievement.Type,
		achievement.Issuer,
		achievement.DateAchieved,
		achievement.Description,
		achievement.CertificateURL,
		achievement.CreatedAt,
	)

	return err
}

func (r *portfolioRepository) DeleteAchievement(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM achievements WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.TechStack,
		&project.Status,
		&project.IsOngoing,
		&project.StartDate,
		&project.EndDate,
		&project.ProjectURL,
		&project.GithubURL,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return project, nil
}
