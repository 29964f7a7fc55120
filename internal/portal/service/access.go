package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
)

// DefaultAdminRoles is the admin panel role allow-list used when none is configured.
var DefaultAdminRoles = []domain.Role{domain.RoleMasterAdmin, domain.RoleSubAdmin}

// rejection explains why a user with valid credentials may not use a portal.
// Reason is logged, Message is shown.
type rejection struct {
	Reason  string
	Message string
}

func reject(reason string) *rejection {
	return &rejection{Reason: reason, Message: MsgRejected}
}

// AccessChecker applies the per-portal access table and builds the actor the
// portal works with.
type AccessChecker struct {
	Store      store.Store
	AdminRoles []domain.Role
}

func (c *AccessChecker) adminRoles() []domain.Role {
	if len(c.AdminRoles) == 0 {
		return DefaultAdminRoles
	}
	return c.AdminRoles
}

// Check returns the actor for u on portal p, or a rejection. A non-nil error
// means the decision could not be made.
func (c *AccessChecker) Check(ctx context.Context, p domain.Portal, u domain.User) (domain.Actor, *rejection, error) {
	switch p {
	case domain.PortalAdmin:
		if !slices.Contains(c.adminRoles(), u.Role) {
			return domain.Actor{}, reject(ReasonRoleNotAllowed), nil
		}
		return domain.NewUserActor(u), nil, nil

	case domain.PortalEmployee:
		if u.Role != domain.RoleEmployee {
			return domain.Actor{}, reject(ReasonRoleNotAllowed), nil
		}
		emp, err := c.Store.Employees().GetEmployeeByUserID(ctx, u.ID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Actor{}, reject(ReasonEmployeeMissing), nil
		}
		if err != nil {
			return domain.Actor{}, nil, fmt.Errorf("load employee: %w", err)
		}
		if emp.Status != domain.StatusActive {
			return domain.Actor{}, reject(ReasonEmployeeInactive), nil
		}
		return domain.NewEmployeeActor(u, emp), nil, nil

	case domain.PortalSales:
		if u.Role != domain.RoleSales {
			return domain.Actor{}, reject(ReasonRoleNotAllowed), nil
		}
		rep, err := c.Store.SalesReps().GetSalesRepByUserID(ctx, u.ID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Actor{}, reject(ReasonSalesRepMissing), nil
		}
		if err != nil {
			return domain.Actor{}, nil, fmt.Errorf("load sales representative: %w", err)
		}
		if rep.Status != domain.StatusActive {
			return domain.Actor{}, reject(ReasonSalesRepInactive), nil
		}
		return domain.NewSalesRepActor(u, rep), nil, nil

	case domain.PortalSupport:
		if u.Role != domain.RoleSupport {
			return domain.Actor{}, reject(ReasonRoleNotAllowed), nil
		}
		return domain.NewUserActor(u), nil, nil
	}

	// web
	if !u.Role.IsClient() {
		return domain.Actor{}, reject(ReasonRoleNotAllowed), nil
	}
	if u.Role == domain.RoleClientProject && !u.Active() {
		return domain.Actor{}, &rejection{Reason: ReasonAccountInactive, Message: MsgInactive}, nil
	}
	return domain.NewUserActor(u), nil, nil
}
