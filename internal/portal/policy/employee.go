package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

func EmployeeAllows(a domain.Authorizable, ability Ability, e domain.Employee) bool {
	switch ability {
	case View:
		return isAdmin(a) || isEmployee(a, e.ID)
	case Create, Update:
		return isAdmin(a)
	case Delete:
		return isMasterAdmin(a)
	}
	return false
}
