package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it
// and expose sub-repositories so callers never start a transaction from
// inside another one.
type Store interface {
	Users() Users
	Employees() Employees
	SalesReps() SalesReps
	Customers() Customers
	Projects() Projects
	Tasks() Tasks
	Timesheets() Timesheets
	LeaveRequests() LeaveRequests
	PayrollItems() PayrollItems
	Licenses() Licenses
	Documents() Documents
	SessionRecords() SessionRecords
	DailyActivity() DailyActivity
	WebSessions() WebSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only use the repos of tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	CreateUser(ctx context.Context, u domain.User) error
	UpdateUserStatus(ctx context.Context, id string, status domain.Status) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Employees interface {
	GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error)
	GetEmployeeByUserID(ctx context.Context, userID string) (domain.Employee, error)
	CreateEmployee(ctx context.Context, e domain.Employee) error
	UpdateEmployeeStatus(ctx context.Context, id string, status domain.Status) error
}

type SalesReps interface {
	GetSalesRepByID(ctx context.Context, id string) (domain.SalesRepresentative, error)
	GetSalesRepByUserID(ctx context.Context, userID string) (domain.SalesRepresentative, error)
	CreateSalesRep(ctx context.Context, s domain.SalesRepresentative) error
}

type Customers interface {
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) error
}

type Projects interface {
	// GetProjectByID returns the project with its member employee ids.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)
	CreateProject(ctx context.Context, p domain.Project) error
	AddProjectMember(ctx context.Context, projectID, employeeID string) error
}

type Tasks interface {
	// GetTaskByID returns the task with its assignee employee ids.
	GetTaskByID(ctx context.Context, id string) (domain.ProjectTask, error)
	CreateTask(ctx context.Context, t domain.ProjectTask) error
	AssignTask(ctx context.Context, taskID, employeeID string) error
	UpdateTask(ctx context.Context, id, title string, status domain.TaskStatus) error
	DeleteTask(ctx context.Context, id string) error
}

type Timesheets interface {
	GetTimesheetByID(ctx context.Context, id string) (domain.Timesheet, error)
	CreateTimesheet(ctx context.Context, t domain.Timesheet) error
	UpdateTimesheetStatus(ctx context.Context, id string, status domain.TimesheetStatus) error
}

type LeaveRequests interface {
	GetLeaveRequestByID(ctx context.Context, id string) (domain.LeaveRequest, error)
	CreateLeaveRequest(ctx context.Context, l domain.LeaveRequest) error
}

type PayrollItems interface {
	GetPayrollItemByID(ctx context.Context, id string) (domain.PayrollItem, error)
	CreatePayrollItem(ctx context.Context, p domain.PayrollItem) error
}

type Licenses interface {
	CreateSubscription(ctx context.Context, s domain.Subscription) error

	// GetLicenseByID resolves the owning customer through the subscription.
	GetLicenseByID(ctx context.Context, id string) (domain.License, error)
	CreateLicense(ctx context.Context, l domain.License) error
}

type Documents interface {
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)
	CreateDocument(ctx context.Context, d domain.Document) error
}

// SessionKey is the natural key of a session record.
type SessionKey struct {
	ActorType string
	ActorID   string
	Guard     string
	SessionID string
}

type SessionRecords interface {
	// CreateSessionRecordIfAbsent inserts r unless a record with the same
	// natural key exists. It reports whether a row was created.
	CreateSessionRecordIfAbsent(ctx context.Context, r domain.SessionRecord) (bool, error)

	GetSessionRecord(ctx context.Context, key SessionKey) (domain.SessionRecord, error)

	// GetOpenSessionRecord returns the record for key only while it is open.
	GetOpenSessionRecord(ctx context.Context, key SessionKey) (domain.SessionRecord, error)

	TouchSessionRecord(ctx context.Context, id string, at time.Time) error

	// CloseSessionRecord sets logout_at and active_seconds on an open record.
	// Closed records are left untouched and ErrNotFound is returned.
	CloseSessionRecord(ctx context.Context, id string, logoutAt time.Time, activeSeconds int64) error

	// ListStaleSessionRecords returns open records last seen before cutoff.
	ListStaleSessionRecords(ctx context.Context, cutoff time.Time) ([]domain.SessionRecord, error)

	CountSessionRecords(ctx context.Context, actorType, actorID, guard string) (int, error)
}

// ActivityKey identifies one daily aggregate row.
type ActivityKey struct {
	ActorType string
	ActorID   string
	Guard     string
	Day       string
}

type DailyActivity interface {
	// RecordNewSession creates the day row if needed and increments
	// sessions_count by one.
	RecordNewSession(ctx context.Context, key ActivityKey, at time.Time) error

	// TouchActivity creates the day row if needed and refreshes last_seen_at.
	TouchActivity(ctx context.Context, key ActivityKey, at time.Time) error

	// AddActiveSeconds creates the day row if needed and adds seconds.
	AddActiveSeconds(ctx context.Context, key ActivityKey, seconds int64, at time.Time) error

	GetDailyActivity(ctx context.Context, key ActivityKey) (domain.DailyActivity, error)
}

type WebSessions interface {
	GetWebSession(ctx context.Context, id string) (domain.WebSession, error)
	SaveWebSession(ctx context.Context, s domain.WebSession) error
	DeleteWebSession(ctx context.Context, id string) error

	// DeleteExpiredWebSessions returns the number of removed rows.
	DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error)
}
