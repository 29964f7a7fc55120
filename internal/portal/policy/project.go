package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

// isProjectCustomer holds for a client of the owning customer. A
// client_project user additionally needs to be assigned to this project.
func isProjectCustomer(a domain.Authorizable, p domain.Project) bool {
	if !isCustomer(a, p.CustomerID) {
		return false
	}
	if a.Role() == domain.RoleClientProject {
		assigned, ok := a.AssignedProjectID()
		return ok && assigned == p.ID
	}
	return true
}

func isProjectMember(a domain.Authorizable, p domain.Project) bool {
	id, ok := a.EmployeeID()
	return ok && p.HasMember(id)
}

func ProjectAllows(a domain.Authorizable, ability Ability, p domain.Project) bool {
	switch ability {
	case View:
		return isAdmin(a) ||
			isProjectMember(a, p) ||
			isProjectCustomer(a, p) ||
			isSalesRep(a, p.SalesRepID)
	case Create, Update:
		return isAdmin(a)
	case Delete:
		return isMasterAdmin(a)
	}
	return false
}
