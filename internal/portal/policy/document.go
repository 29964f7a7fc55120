package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

// DocumentTarget is a document and, when it is filed under one, its project.
type DocumentTarget struct {
	Document domain.Document
	Project  *domain.Project
}

func DocumentAllows(a domain.Authorizable, ability Ability, t DocumentTarget) bool {
	d := t.Document
	uploader := d.UploadedBy != "" && a.UserID() == d.UploadedBy

	switch ability {
	case View:
		switch {
		case isAdmin(a), uploader:
			return true
		case d.CustomerID != nil && isCustomer(a, *d.CustomerID):
			return true
		case d.EmployeeID != nil && isEmployee(a, *d.EmployeeID):
			return true
		case t.Project != nil && isProjectMember(a, *t.Project):
			return true
		}
		return false
	case Create:
		return true
	case Update, Delete:
		return isAdmin(a) || uploader
	}
	return false
}
