package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

func TimesheetAllows(a domain.Authorizable, ability Ability, t domain.Timesheet) bool {
	switch ability {
	case View:
		return isAdmin(a) || isEmployee(a, t.EmployeeID)
	case Create:
		_, employee := a.EmployeeID()
		return employee || isAdmin(a)
	case Update, Delete:
		if isAdmin(a) {
			return true
		}
		open := t.Status == domain.TimesheetDraft || t.Status == domain.TimesheetSubmitted
		return open && isEmployee(a, t.EmployeeID)
	case Approve:
		return isAdmin(a)
	}
	return false
}

func LeaveRequestAllows(a domain.Authorizable, ability Ability, l domain.LeaveRequest) bool {
	pendingOwner := l.Status == domain.LeavePending && isEmployee(a, l.EmployeeID)

	switch ability {
	case View:
		return isAdmin(a) || isEmployee(a, l.EmployeeID)
	case Create:
		_, employee := a.EmployeeID()
		return employee
	case Update:
		return pendingOwner
	case Delete:
		return pendingOwner || isMasterAdmin(a)
	case Approve:
		return isAdmin(a)
	}
	return false
}

func PayrollItemAllows(a domain.Authorizable, ability Ability, p domain.PayrollItem) bool {
	switch ability {
	case View:
		return isAdmin(a) || isEmployee(a, p.EmployeeID)
	case Create, Update, Delete:
		return isAdmin(a)
	}
	return false
}
