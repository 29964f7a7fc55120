package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

// LicenseAllows lets a customer see licenses sold under its own
// subscriptions and a sales rep see the licenses it sold.
func LicenseAllows(a domain.Authorizable, ability Ability, l domain.License) bool {
	switch ability {
	case View:
		return isAdmin(a) || isCustomer(a, l.CustomerID) || isSalesRep(a, l.SalesRepID)
	case Create, Update, Delete:
		return isAdmin(a)
	}
	return false
}
