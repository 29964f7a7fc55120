package domain

// ActorKind tags which identity an Actor carries.
type ActorKind int

const (
	ActorUser ActorKind = iota
	ActorEmployee
	ActorSalesRep
)

func (k ActorKind) String() string {
	switch k {
	case ActorEmployee:
		return "employee"
	case ActorSalesRep:
		return "sales_rep"
	default:
		return "user"
	}
}

// Authorizable is what policies need to know about whoever is acting.
type Authorizable interface {
	UserID() string
	Role() Role
	IsAdmin() bool
	IsMasterAdmin() bool
	EmployeeID() (string, bool)
	SalesRepID() (string, bool)
	CustomerID() (string, bool)
	AssignedProjectID() (string, bool)
}

// Actor is the authenticated principal of a request. Employee is set only
// for ActorEmployee and SalesRep only for ActorSalesRep.
type Actor struct {
	Kind     ActorKind
	User     User
	Employee *Employee
	SalesRep *SalesRepresentative
}

var _ Authorizable = Actor{}

func NewUserActor(u User) Actor { return Actor{Kind: ActorUser, User: u} }

func NewEmployeeActor(u User, e Employee) Actor {
	return Actor{Kind: ActorEmployee, User: u, Employee: &e}
}

func NewSalesRepActor(u User, s SalesRepresentative) Actor {
	return Actor{Kind: ActorSalesRep, User: u, SalesRep: &s}
}

func (a Actor) UserID() string { return a.User.ID }
func (a Actor) Role() Role     { return a.User.Role }

// IsAdmin holds only for back-office users. Employee and sales actors never
// inherit admin rights even if their user row says otherwise.
func (a Actor) IsAdmin() bool {
	return a.Kind == ActorUser && a.User.Role.IsAdminTier()
}

func (a Actor) IsMasterAdmin() bool {
	return a.Kind == ActorUser && a.User.Role == RoleMasterAdmin
}

func (a Actor) EmployeeID() (string, bool) {
	if a.Kind != ActorEmployee || a.Employee == nil {
		return "", false
	}
	return a.Employee.ID, true
}

func (a Actor) SalesRepID() (string, bool) {
	if a.Kind != ActorSalesRep || a.SalesRep == nil {
		return "", false
	}
	return a.SalesRep.ID, true
}

func (a Actor) CustomerID() (string, bool) {
	if a.Kind != ActorUser || !a.User.Role.IsClient() || a.User.CustomerID == nil {
		return "", false
	}
	return *a.User.CustomerID, true
}

// AssignedProjectID is the project a client_project user is scoped to.
func (a Actor) AssignedProjectID() (string, bool) {
	if a.Kind != ActorUser || a.User.Role != RoleClientProject || a.User.ProjectID == nil {
		return "", false
	}
	return *a.User.ProjectID, true
}

// TrackingType and TrackingID identify the actor in session records.
func (a Actor) TrackingType() string { return a.Kind.String() }

func (a Actor) TrackingID() string {
	switch a.Kind {
	case ActorEmployee:
		if a.Employee != nil {
			return a.Employee.ID
		}
	case ActorSalesRep:
		if a.SalesRep != nil {
			return a.SalesRep.ID
		}
	}
	return a.User.ID
}
