package domain

import (
	"slices"
	"time"
)

type Project struct {
	ID                string
	CustomerID        string
	SalesRepID        *string
	Name              string
	MemberEmployeeIDs []string
	CreatedAt         time.Time
}

func (p Project) HasMember(employeeID string) bool {
	return slices.Contains(p.MemberEmployeeIDs, employeeID)
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists every task status.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskBlocked, TaskCompleted, TaskDone}

// Terminal reports whether a task has been closed and is immutable.
func (s TaskStatus) Terminal() bool { return s == TaskCompleted || s == TaskDone }

type ProjectTask struct {
	ID                  string
	ProjectID           string
	Title               string
	Status              TaskStatus
	CustomerVisible     bool
	AssigneeEmployeeIDs []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (t ProjectTask) IsAssignedTo(employeeID string) bool {
	return slices.Contains(t.AssigneeEmployeeIDs, employeeID)
}

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

type Timesheet struct {
	ID         string
	EmployeeID string
	Status     TimesheetStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	Status     LeaveStatus
	CreatedAt  time.Time
}

type PayrollItem struct {
	ID          string
	EmployeeID  string
	AmountCents int64
	CreatedAt   time.Time
}

type Subscription struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
}

// License is sold under a subscription. CustomerID is resolved through the
// subscription by the store.
type License struct {
	ID             string
	SubscriptionID string
	CustomerID     string
	SalesRepID     *string
	CreatedAt      time.Time
}

type Document struct {
	ID         string
	Name       string
	UploadedBy string // user id
	CustomerID *string
	EmployeeID *string
	ProjectID  *string
	CreatedAt  time.Time
}
