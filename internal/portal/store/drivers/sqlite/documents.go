package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

type licensesRepo struct {
	db DBTX
}

func (r *licensesRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, customer_id, created_at) VALUES (?, ?, ?)`,
		s.ID, s.CustomerID, ts(orNow(s.CreatedAt)),
	)
	return mapConstraint(err)
}

func (r *licensesRepo) GetLicenseByID(ctx context.Context, id string) (domain.License, error) {
	var (
		l          domain.License
		salesRepID sql.NullString
		createdAt  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT l.id, l.subscription_id, s.customer_id, l.sales_rep_id, l.created_at
		   FROM licenses l
		   JOIN subscriptions s ON s.id = l.subscription_id
		  WHERE l.id = ?`, id,
	).Scan(&l.ID, &l.SubscriptionID, &l.CustomerID, &salesRepID, &createdAt)
	if err != nil {
		return domain.License{}, mapNotFound(err)
	}
	l.SalesRepID = mapNullStringPtr(salesRepID)
	l.CreatedAt = parseTS(createdAt)
	return l, nil
}

func (r *licensesRepo) CreateLicense(ctx context.Context, l domain.License) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO licenses (id, subscription_id, sales_rep_id, created_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.SubscriptionID, mapOptionalString(l.SalesRepID), ts(orNow(l.CreatedAt)),
	)
	return mapConstraint(err)
}

type documentsRepo struct {
	db DBTX
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	var (
		d                                 domain.Document
		customerID, employeeID, projectID sql.NullString
		createdAt                         string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, uploaded_by, customer_id, employee_id, project_id, created_at
		   FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.UploadedBy, &customerID, &employeeID, &projectID, &createdAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	d.CustomerID = mapNullStringPtr(customerID)
	d.EmployeeID = mapNullStringPtr(employeeID)
	d.ProjectID = mapNullStringPtr(projectID)
	d.CreatedAt = parseTS(createdAt)
	return d, nil
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, uploaded_by, customer_id, employee_id, project_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.UploadedBy,
		mapOptionalString(d.CustomerID), mapOptionalString(d.EmployeeID), mapOptionalString(d.ProjectID),
		ts(orNow(d.CreatedAt)),
	)
	return mapConstraint(err)
}
