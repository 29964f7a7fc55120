// Package policy holds the authorization rules of the resource API. Every
// rule is a pure function of the actor and the resource.
package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

type Ability string

const (
	View    Ability = "view"
	Create  Ability = "create"
	Update  Ability = "update"
	Delete  Ability = "delete"
	Approve Ability = "approve"
)

func isAdmin(a domain.Authorizable) bool       { return a.IsAdmin() }
func isMasterAdmin(a domain.Authorizable) bool { return a.IsMasterAdmin() }

func isEmployee(a domain.Authorizable, employeeID string) bool {
	id, ok := a.EmployeeID()
	return ok && id == employeeID
}

func isCustomer(a domain.Authorizable, customerID string) bool {
	id, ok := a.CustomerID()
	return ok && id == customerID
}

func isSalesRep(a domain.Authorizable, salesRepID *string) bool {
	id, ok := a.SalesRepID()
	return ok && salesRepID != nil && id == *salesRepID
}

// isSales reports a sales actor, whether it came in as a sales rep or a
// user carrying the sales role.
func isSales(a domain.Authorizable) bool {
	_, rep := a.SalesRepID()
	return rep || a.Role() == domain.RoleSales
}
