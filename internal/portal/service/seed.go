package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
	"github.com/aussiebroadwan/portalgate/pkg/idx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

var ErrSeedAlready = errors.New("store already seeded")

// SeedData is the initial data set of an empty database.
type SeedData struct {
	Customers     []SeedCustomer     `mapstructure:"customers"`
	Users         []SeedUser         `mapstructure:"users"`
	Projects      []SeedProject      `mapstructure:"projects"`
	Tasks         []SeedTask         `mapstructure:"tasks"`
	Timesheets    []SeedTimesheet    `mapstructure:"timesheets"`
	LeaveRequests []SeedLeaveRequest `mapstructure:"leave_requests"`
	PayrollItems  []SeedPayrollItem  `mapstructure:"payroll_items"`
	Licenses      []SeedLicense      `mapstructure:"licenses"`
	Documents     []SeedDocument     `mapstructure:"documents"`
}

type SeedCustomer struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// SeedUser creates a user and, when EmployeeID or SalesRepID is set, the
// linked employee or sales representative row.
type SeedUser struct {
	ID             string `mapstructure:"id"`
	Name           string `mapstructure:"name"`
	Email          string `mapstructure:"email"`
	Password       string `mapstructure:"password"`
	Role           string `mapstructure:"role"`
	Status         string `mapstructure:"status"`
	CustomerID     string `mapstructure:"customer_id"`
	ProjectID      string `mapstructure:"project_id"`
	EmployeeID     string `mapstructure:"employee_id"`
	EmployeeStatus string `mapstructure:"employee_status"`
	SalesRepID     string `mapstructure:"sales_rep_id"`
	SalesRepStatus string `mapstructure:"sales_rep_status"`
}

type SeedProject struct {
	ID         string   `mapstructure:"id"`
	CustomerID string   `mapstructure:"customer_id"`
	SalesRepID string   `mapstructure:"sales_rep_id"`
	Name       string   `mapstructure:"name"`
	Members    []string `mapstructure:"members"`
}

type SeedTask struct {
	ID              string   `mapstructure:"id"`
	ProjectID       string   `mapstructure:"project_id"`
	Title           string   `mapstructure:"title"`
	Status          string   `mapstructure:"status"`
	CustomerVisible bool     `mapstructure:"customer_visible"`
	Assignees       []string `mapstructure:"assignees"`
}

type SeedTimesheet struct {
	ID         string `mapstructure:"id"`
	EmployeeID string `mapstructure:"employee_id"`
	Status     string `mapstructure:"status"`
}

type SeedLeaveRequest struct {
	ID         string `mapstructure:"id"`
	EmployeeID string `mapstructure:"employee_id"`
	Status     string `mapstructure:"status"`
}

type SeedPayrollItem struct {
	ID          string `mapstructure:"id"`
	EmployeeID  string `mapstructure:"employee_id"`
	AmountCents int64  `mapstructure:"amount_cents"`
}

// SeedLicense creates the backing subscription as well.
type SeedLicense struct {
	ID             string `mapstructure:"id"`
	SubscriptionID string `mapstructure:"subscription_id"`
	CustomerID     string `mapstructure:"customer_id"`
	SalesRepID     string `mapstructure:"sales_rep_id"`
}

type SeedDocument struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	UploadedBy string `mapstructure:"uploaded_by"`
	CustomerID string `mapstructure:"customer_id"`
	EmployeeID string `mapstructure:"employee_id"`
	ProjectID  string `mapstructure:"project_id"`
}

type SeedService struct {
	Store store.Store
}

// Seed loads data into an empty store in a single transaction.
func (s *SeedService) Seed(ctx context.Context, data SeedData) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		l.Info("skipping seed, store already has users")
		return ErrSeedAlready
	}

	// Hash outside the transaction; argon2 is slow.
	hashes := make([]string, len(data.Users))
	for i, u := range data.Users {
		hashes[i], err = cryptox.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, c := range data.Customers {
			if err := tx.Customers().CreateCustomer(ctx, domain.Customer{ID: idOr(c.ID), Name: c.Name}); err != nil {
				return fmt.Errorf("customer %s: %w", c.ID, err)
			}
		}
		for i, su := range data.Users {
			if err := seedUser(ctx, tx, su, hashes[i]); err != nil {
				return fmt.Errorf("user %s: %w", su.Email, err)
			}
		}
		for _, p := range data.Projects {
			err := tx.Projects().CreateProject(ctx, domain.Project{
				ID:                idOr(p.ID),
				CustomerID:        p.CustomerID,
				SalesRepID:        optional(p.SalesRepID),
				Name:              p.Name,
				MemberEmployeeIDs: p.Members,
			})
			if err != nil {
				return fmt.Errorf("project %s: %w", p.ID, err)
			}
		}
		for _, t := range data.Tasks {
			err := tx.Tasks().CreateTask(ctx, domain.ProjectTask{
				ID:                  idOr(t.ID),
				ProjectID:           t.ProjectID,
				Title:               t.Title,
				Status:              domain.TaskStatus(t.Status),
				CustomerVisible:     t.CustomerVisible,
				AssigneeEmployeeIDs: t.Assignees,
			})
			if err != nil {
				return fmt.Errorf("task %s: %w", t.ID, err)
			}
		}
		for _, ts := range data.Timesheets {
			err := tx.Timesheets().CreateTimesheet(ctx, domain.Timesheet{
				ID:         idOr(ts.ID),
				EmployeeID: ts.EmployeeID,
				Status:     domain.TimesheetStatus(ts.Status),
			})
			if err != nil {
				return fmt.Errorf("timesheet %s: %w", ts.ID, err)
			}
		}
		for _, lr := range data.LeaveRequests {
			err := tx.LeaveRequests().CreateLeaveRequest(ctx, domain.LeaveRequest{
				ID:         idOr(lr.ID),
				EmployeeID: lr.EmployeeID,
				Status:     domain.LeaveStatus(lr.Status),
			})
			if err != nil {
				return fmt.Errorf("leave request %s: %w", lr.ID, err)
			}
		}
		for _, pi := range data.PayrollItems {
			err := tx.PayrollItems().CreatePayrollItem(ctx, domain.PayrollItem{
				ID:          idOr(pi.ID),
				EmployeeID:  pi.EmployeeID,
				AmountCents: pi.AmountCents,
			})
			if err != nil {
				return fmt.Errorf("payroll item %s: %w", pi.ID, err)
			}
		}
		for _, lic := range data.Licenses {
			subID := idOr(lic.SubscriptionID)
			if err := tx.Licenses().CreateSubscription(ctx, domain.Subscription{ID: subID, CustomerID: lic.CustomerID}); err != nil {
				return fmt.Errorf("subscription %s: %w", subID, err)
			}
			err := tx.Licenses().CreateLicense(ctx, domain.License{
				ID:             idOr(lic.ID),
				SubscriptionID: subID,
				SalesRepID:     optional(lic.SalesRepID),
			})
			if err != nil {
				return fmt.Errorf("license %s: %w", lic.ID, err)
			}
		}
		for _, d := range data.Documents {
			err := tx.Documents().CreateDocument(ctx, domain.Document{
				ID:         idOr(d.ID),
				Name:       d.Name,
				UploadedBy: d.UploadedBy,
				CustomerID: optional(d.CustomerID),
				EmployeeID: optional(d.EmployeeID),
				ProjectID:  optional(d.ProjectID),
			})
			if err != nil {
				return fmt.Errorf("document %s: %w", d.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	l.Info("store seeded",
		"customers", len(data.Customers),
		"users", len(data.Users),
		"projects", len(data.Projects),
	)
	return nil
}

func seedUser(ctx context.Context, tx store.Tx, su SeedUser, hash string) error {
	u := domain.User{
		ID:           idOr(su.ID),
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: hash,
		Role:         domain.Role(su.Role),
		Status:       domain.Status(su.Status),
		CustomerID:   optional(su.CustomerID),
		ProjectID:    optional(su.ProjectID),
	}
	if err := tx.Users().CreateUser(ctx, u); err != nil {
		return err
	}

	if su.EmployeeID != "" {
		err := tx.Employees().CreateEmployee(ctx, domain.Employee{
			ID:     su.EmployeeID,
			UserID: &u.ID,
			Name:   su.Name,
			Status: domain.Status(su.EmployeeStatus),
		})
		if err != nil {
			return fmt.Errorf("employee: %w", err)
		}
	}
	if su.SalesRepID != "" {
		err := tx.SalesReps().CreateSalesRep(ctx, domain.SalesRepresentative{
			ID:     su.SalesRepID,
			UserID: &u.ID,
			Name:   su.Name,
			Status: domain.Status(su.SalesRepStatus),
		})
		if err != nil {
			return fmt.Errorf("sales representative: %w", err)
		}
	}
	return nil
}

func idOr(id string) string {
	if id == "" {
		return idx.New().String()
	}
	return id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
