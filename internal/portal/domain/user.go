package domain

import "time"

type Role string

const (
	RoleMasterAdmin   Role = "master_admin"
	RoleSubAdmin      Role = "sub_admin"
	RoleClient        Role = "client"
	RoleClientProject Role = "client_project"
	RoleEmployee      Role = "employee"
	RoleSales         Role = "sales"
	RoleSupport       Role = "support"
)

// IsAdminTier reports whether r is one of the back-office roles.
func (r Role) IsAdminTier() bool { return r == RoleMasterAdmin || r == RoleSubAdmin }

// IsClient reports whether r belongs to the client portal.
func (r Role) IsClient() bool { return r == RoleClient || r == RoleClientProject }

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID           string
	Name         string
	Email        string // stored lower-case
	PasswordHash string // argon2 encoded
	Role         Role
	Status       Status
	CustomerID   *string
	ProjectID    *string // assigned project for client_project users
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Active() bool { return u.Status == StatusActive }

type Employee struct {
	ID        string
	UserID    *string
	Name      string
	Status    Status
	CreatedAt time.Time
}

type SalesRepresentative struct {
	ID        string
	UserID    *string
	Name      string
	Status    Status
	CreatedAt time.Time
}

type Customer struct {
	ID        string
	UserID    *string
	Name      string
	CreatedAt time.Time
}
