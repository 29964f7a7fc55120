package policy

import "github.com/aussiebroadwan/portalgate/internal/portal/domain"

// TaskTarget is a task together with the project it belongs to.
type TaskTarget struct {
	Task    domain.ProjectTask
	Project domain.Project
}

func canViewTask(a domain.Authorizable, t TaskTarget) bool {
	if isAdmin(a) || isProjectMember(a, t.Project) {
		return true
	}
	if t.Task.CustomerVisible && isProjectCustomer(a, t.Project) {
		return true
	}
	id, ok := a.EmployeeID()
	return ok && t.Task.IsAssignedTo(id)
}

// TaskAllows gates project tasks. Update and delete need view access and
// master admin rights and are never granted to sales. Closed tasks cannot
// be deleted.
func TaskAllows(a domain.Authorizable, ability Ability, t TaskTarget) bool {
	switch ability {
	case View:
		return canViewTask(a, t)
	case Create:
		return isAdmin(a) || isProjectMember(a, t.Project)
	case Update:
		if isSales(a) {
			return false
		}
		return canViewTask(a, t) && isMasterAdmin(a)
	case Delete:
		if isSales(a) {
			return false
		}
		return canViewTask(a, t) && isMasterAdmin(a) && !t.Task.Status.Terminal()
	}
	return false
}
