package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

type projectsRepo struct {
	db DBTX
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	var (
		p          domain.Project
		salesRepID sql.NullString
		createdAt  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, customer_id, sales_rep_id, name, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.CustomerID, &salesRepID, &p.Name, &createdAt)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	p.SalesRepID = mapNullStringPtr(salesRepID)
	p.CreatedAt = parseTS(createdAt)

	p.MemberEmployeeIDs, err = queryIDs(ctx, r.db,
		`SELECT employee_id FROM project_members WHERE project_id = ? ORDER BY employee_id`, id)
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, customer_id, sales_rep_id, name, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.CustomerID, mapOptionalString(p.SalesRepID), p.Name, ts(orNow(p.CreatedAt)),
	)
	if err != nil {
		return mapConstraint(err)
	}
	for _, employeeID := range p.MemberEmployeeIDs {
		if err := r.AddProjectMember(ctx, p.ID, employeeID); err != nil {
			return err
		}
	}
	return nil
}

func (r *projectsRepo) AddProjectMember(ctx context.Context, projectID, employeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_members (project_id, employee_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		projectID, employeeID,
	)
	return err
}

type tasksRepo struct {
	db DBTX
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.ProjectTask, error) {
	var (
		t                    domain.ProjectTask
		status               string
		visible              int
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, title, status, customer_visible, created_at, updated_at
		   FROM project_tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.ProjectID, &t.Title, &status, &visible, &createdAt, &updatedAt)
	if err != nil {
		return domain.ProjectTask{}, mapNotFound(err)
	}
	t.Status = domain.TaskStatus(status)
	t.CustomerVisible = visible != 0
	t.CreatedAt = parseTS(createdAt)
	t.UpdatedAt = parseTS(updatedAt)

	t.AssigneeEmployeeIDs, err = queryIDs(ctx, r.db,
		`SELECT employee_id FROM project_task_assignees WHERE task_id = ? ORDER BY employee_id`, id)
	if err != nil {
		return domain.ProjectTask{}, err
	}
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.ProjectTask) error {
	created := orNow(t.CreatedAt)
	status := t.Status
	if status == "" {
		status = domain.TaskTodo
	}
	visible := 0
	if t.CustomerVisible {
		visible = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_tasks (id, project_id, title, status, customer_visible, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, string(status), visible, ts(created), ts(created),
	)
	if err != nil {
		return mapConstraint(err)
	}
	for _, employeeID := range t.AssigneeEmployeeIDs {
		if err := r.AssignTask(ctx, t.ID, employeeID); err != nil {
			return err
		}
	}
	return nil
}

func (r *tasksRepo) AssignTask(ctx context.Context, taskID, employeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_task_assignees (task_id, employee_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		taskID, employeeID,
	)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, id, title string, status domain.TaskStatus) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE project_tasks SET title = ?, status = ?, updated_at = ? WHERE id = ?`,
		title, string(status), ts(now()), id,
	))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM project_tasks WHERE id = ?`, id))
}
