package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Hadil1-h/pfe/internal/domain"
)

// SQLiteDatasetRepo implements DatasetRepo over a SQLite database.
type SQLiteDatasetRepo struct {
	db *sql.DB
}

// NewSQLiteDatasetRepo creates a new SQLiteDatasetRepo.
func NewSQLiteDatasetRepo(db *sql.DB) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{db: db}
}

func (r *SQLiteDatasetRepo) ListProjects(ctx context.Context, skipEmpty bool) ([]domain.ProjectRecord, error) {
	// LEFT JOINs keep projects whose status or company row is missing.
	query := `SELECT p.id, p.nom_projet, p.date_debut, p.date_fin,
			sp.nom, p.budget, p.archived, s.raison_sociale, p.equipe_id
		FROM projet p
		LEFT JOIN statut_projet sp ON sp.id = p.id_statut_projet
		LEFT JOIN societe s ON s.id = p.id_societe
		WHERE p.archived = 0`
	if skipEmpty {
		query += ` AND EXISTS (SELECT 1 FROM tache_projet t WHERE t.id_projet = p.id)`
	}
	query += ` ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.ProjectRecord
	for rows.Next() {
		var (
			p         domain.ProjectRecord
			startDate sql.NullString
			endDate   sql.NullString
			status    sql.NullString
			company   sql.NullString
			teamID    sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &startDate, &endDate,
			&status, &p.Budget, &p.Archived, &company, &teamID); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.StartDate = startDate.String
		p.EndDate = endDate.String
		p.Status = status.String
		p.Company = company.String
		if teamID.Valid {
			id := int(teamID.Int64)
			p.TeamID = &id
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteDatasetRepo) ListTasks(ctx context.Context) ([]domain.TaskRecord, error) {
	query := `SELECT id, id_projet, date_debut, date_fin, id_statut_tache, assigne, titre
		FROM tache_projet ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.TaskRecord
	for rows.Next() {
		var (
			t         domain.TaskRecord
			startDate sql.NullString
			endDate   sql.NullString
			status    sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.ProjectID, &startDate, &endDate,
			&status, &t.Assignee, &t.Title); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.StartDate = startDate.String
		t.EndDate = endDate.String
		t.Status = int(status.Int64)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteDatasetRepo) ListAgents(ctx context.Context) ([]domain.AgentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nom, prenom, email FROM agent ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	var agents []domain.AgentRecord
	for rows.Next() {
		var a domain.AgentRecord
		if err := rows.Scan(&a.ID, &a.LastName, &a.FirstName, &a.Email); err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}
	return agents, nil
}

func (r *SQLiteDatasetRepo) ListTeams(ctx context.Context) ([]domain.TeamRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nom, responsable_id FROM equipe ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.TeamRecord
	for rows.Next() {
		var (
			e     domain.TeamRecord
			espID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Name, &espID); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		if espID.Valid {
			id := int(espID.Int64)
			e.ResponsibleID = &id
		}
		teams = append(teams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}
