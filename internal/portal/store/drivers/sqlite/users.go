package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

type usersRepo struct {
	db DBTX
}

const userColumns = `id, name, email, password_hash, role, status, customer_id, project_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                    domain.User
		role, status         string
		customerID, project  sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &status, &customerID, &project, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.Status = domain.Status(status)
	u.CustomerID = mapNullStringPtr(customerID)
	u.ProjectID = mapNullStringPtr(project)
	u.CreatedAt = parseTS(createdAt)
	u.UpdatedAt = parseTS(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	created := orNow(u.CreatedAt)
	status := u.Status
	if status == "" {
		status = domain.StatusActive
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash,
		string(u.Role), string(status),
		mapOptionalString(u.CustomerID), mapOptionalString(u.ProjectID),
		ts(created), ts(created),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUserStatus(ctx context.Context, id string, status domain.Status) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), ts(now()), id,
	))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type employeesRepo struct {
	db DBTX
}

func scanEmployee(row *sql.Row) (domain.Employee, error) {
	var (
		e                 domain.Employee
		userID            sql.NullString
		status, createdAt string
	)
	if err := row.Scan(&e.ID, &userID, &e.Name, &status, &createdAt); err != nil {
		return domain.Employee{}, mapNotFound(err)
	}
	e.UserID = mapNullStringPtr(userID)
	e.Status = domain.Status(status)
	e.CreatedAt = parseTS(createdAt)
	return e, nil
}

func (r *employeesRepo) GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error) {
	return scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, status, created_at FROM employees WHERE id = ?`, id))
}

func (r *employeesRepo) GetEmployeeByUserID(ctx context.Context, userID string) (domain.Employee, error) {
	return scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, status, created_at FROM employees WHERE user_id = ?`, userID))
}

func (r *employeesRepo) CreateEmployee(ctx context.Context, e domain.Employee) error {
	status := e.Status
	if status == "" {
		status = domain.StatusActive
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, user_id, name, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, mapOptionalString(e.UserID), e.Name, string(status), ts(orNow(e.CreatedAt)),
	)
	return mapConstraint(err)
}

func (r *employeesRepo) UpdateEmployeeStatus(ctx context.Context, id string, status domain.Status) error {
	return expectOne(r.db.ExecContext(ctx, `UPDATE employees SET status = ? WHERE id = ?`, string(status), id))
}

type salesRepsRepo struct {
	db DBTX
}

func scanSalesRep(row *sql.Row) (domain.SalesRepresentative, error) {
	var (
		s                 domain.SalesRepresentative
		userID            sql.NullString
		status, createdAt string
	)
	if err := row.Scan(&s.ID, &userID, &s.Name, &status, &createdAt); err != nil {
		return domain.SalesRepresentative{}, mapNotFound(err)
	}
	s.UserID = mapNullStringPtr(userID)
	s.Status = domain.Status(status)
	s.CreatedAt = parseTS(createdAt)
	return s, nil
}

func (r *salesRepsRepo) GetSalesRepByID(ctx context.Context, id string) (domain.SalesRepresentative, error) {
	return scanSalesRep(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, status, created_at FROM sales_representatives WHERE id = ?`, id))
}

func (r *salesRepsRepo) GetSalesRepByUserID(ctx context.Context, userID string) (domain.SalesRepresentative, error) {
	return scanSalesRep(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, status, created_at FROM sales_representatives WHERE user_id = ?`, userID))
}

func (r *salesRepsRepo) CreateSalesRep(ctx context.Context, s domain.SalesRepresentative) error {
	status := s.Status
	if status == "" {
		status = domain.StatusActive
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales_representatives (id, user_id, name, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, mapOptionalString(s.UserID), s.Name, string(status), ts(orNow(s.CreatedAt)),
	)
	return mapConstraint(err)
}

type customersRepo struct {
	db DBTX
}

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	var (
		c         domain.Customer
		userID    sql.NullString
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &userID, &c.Name, &createdAt)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	c.UserID = mapNullStringPtr(userID)
	c.CreatedAt = parseTS(createdAt)
	return c, nil
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, mapOptionalString(c.UserID), c.Name, ts(orNow(c.CreatedAt)),
	)
	return mapConstraint(err)
}
