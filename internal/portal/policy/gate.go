package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrDenied = errors.New("policy: denied")

// DenialRecorder counts denied checks.
type DenialRecorder interface {
	PolicyDenied(resource, ability string)
}

// Gate dispatches a check to the policy of the resource's type. Unknown
// resource types are always denied.
type Gate struct {
	Denials DenialRecorder
	Tracer  trace.Tracer
}

func NewGate(denials DenialRecorder) *Gate {
	return &Gate{Denials: denials, Tracer: otel.Tracer("portalgate/policy")}
}

func (g *Gate) Allows(ctx context.Context, a domain.Authorizable, ability Ability, resource any) bool {
	name, allowed := decide(a, ability, resource)

	if g.Tracer != nil {
		_, span := g.Tracer.Start(ctx, "policy.check", trace.WithAttributes(
			attribute.String("policy.resource", name),
			attribute.String("policy.ability", string(ability)),
			attribute.Bool("policy.allowed", allowed),
		))
		span.End()
	}

	if !allowed && g.Denials != nil {
		g.Denials.PolicyDenied(name, string(ability))
	}
	return allowed
}

// Authorize is Allows returning ErrDenied.
func (g *Gate) Authorize(ctx context.Context, a domain.Authorizable, ability Ability, resource any) error {
	if !g.Allows(ctx, a, ability, resource) {
		return fmt.Errorf("%w: %s", ErrDenied, ability)
	}
	return nil
}

func decide(a domain.Authorizable, ability Ability, resource any) (string, bool) {
	if a == nil {
		return "unknown", false
	}
	switch r := resource.(type) {
	case domain.Employee:
		return "employee", EmployeeAllows(a, ability, r)
	case domain.Project:
		return "project", ProjectAllows(a, ability, r)
	case TaskTarget:
		return "project_task", TaskAllows(a, ability, r)
	case domain.Timesheet:
		return "timesheet", TimesheetAllows(a, ability, r)
	case domain.LeaveRequest:
		return "leave_request", LeaveRequestAllows(a, ability, r)
	case domain.PayrollItem:
		return "payroll_item", PayrollItemAllows(a, ability, r)
	case domain.License:
		return "license", LicenseAllows(a, ability, r)
	case DocumentTarget:
		return "document", DocumentAllows(a, ability, r)
	}
	return "unknown", false
}
