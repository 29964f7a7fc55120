package sqlite

import (
	"context"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

type timesheetsRepo struct {
	db DBTX
}

func (r *timesheetsRepo) GetTimesheetByID(ctx context.Context, id string) (domain.Timesheet, error) {
	var (
		t                            domain.Timesheet
		status, createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, employee_id, status, created_at, updated_at FROM timesheets WHERE id = ?`, id,
	).Scan(&t.ID, &t.EmployeeID, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.Timesheet{}, mapNotFound(err)
	}
	t.Status = domain.TimesheetStatus(status)
	t.CreatedAt = parseTS(createdAt)
	t.UpdatedAt = parseTS(updatedAt)
	return t, nil
}

func (r *timesheetsRepo) CreateTimesheet(ctx context.Context, t domain.Timesheet) error {
	created := orNow(t.CreatedAt)
	status := t.Status
	if status == "" {
		status = domain.TimesheetDraft
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timesheets (id, employee_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.EmployeeID, string(status), ts(created), ts(created),
	)
	return mapConstraint(err)
}

func (r *timesheetsRepo) UpdateTimesheetStatus(ctx context.Context, id string, status domain.TimesheetStatus) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE timesheets SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), ts(now()), id,
	))
}

type leaveRequestsRepo struct {
	db DBTX
}

func (r *leaveRequestsRepo) GetLeaveRequestByID(ctx context.Context, id string) (domain.LeaveRequest, error) {
	var (
		l                 domain.LeaveRequest
		status, createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, employee_id, status, created_at FROM leave_requests WHERE id = ?`, id,
	).Scan(&l.ID, &l.EmployeeID, &status, &createdAt)
	if err != nil {
		return domain.LeaveRequest{}, mapNotFound(err)
	}
	l.Status = domain.LeaveStatus(status)
	l.CreatedAt = parseTS(createdAt)
	return l, nil
}

func (r *leaveRequestsRepo) CreateLeaveRequest(ctx context.Context, l domain.LeaveRequest) error {
	status := l.Status
	if status == "" {
		status = domain.LeavePending
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leave_requests (id, employee_id, status, created_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.EmployeeID, string(status), ts(orNow(l.CreatedAt)),
	)
	return mapConstraint(err)
}

type payrollItemsRepo struct {
	db DBTX
}

func (r *payrollItemsRepo) GetPayrollItemByID(ctx context.Context, id string) (domain.PayrollItem, error) {
	var (
		p         domain.PayrollItem
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, employee_id, amount_cents, created_at FROM payroll_items WHERE id = ?`, id,
	).Scan(&p.ID, &p.EmployeeID, &p.AmountCents, &createdAt)
	if err != nil {
		return domain.PayrollItem{}, mapNotFound(err)
	}
	p.CreatedAt = parseTS(createdAt)
	return p, nil
}

func (r *payrollItemsRepo) CreatePayrollItem(ctx context.Context, p domain.PayrollItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payroll_items (id, employee_id, amount_cents, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.EmployeeID, p.AmountCents, ts(orNow(p.CreatedAt)),
	)
	return mapConstraint(err)
}
