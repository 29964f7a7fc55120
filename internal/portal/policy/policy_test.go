package policy_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/policy"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func ptr(s string) *string { return &s }

var (
	masterAdmin = domain.NewUserActor(domain.User{ID: "u-master", Role: domain.RoleMasterAdmin})
	subAdmin    = domain.NewUserActor(domain.User{ID: "u-sub", Role: domain.RoleSubAdmin})
	client      = domain.NewUserActor(domain.User{ID: "u-client", Role: domain.RoleClient, CustomerID: ptr("c1")})
	otherClient = domain.NewUserActor(domain.User{ID: "u-other", Role: domain.RoleClient, CustomerID: ptr("c2")})
	projClient  = domain.NewUserActor(domain.User{ID: "u-pc", Role: domain.RoleClientProject, CustomerID: ptr("c1"), ProjectID: ptr("p2")})
	member      = domain.NewEmployeeActor(domain.User{ID: "u-e1", Role: domain.RoleEmployee}, domain.Employee{ID: "e1"})
	assignee    = domain.NewEmployeeActor(domain.User{ID: "u-e2", Role: domain.RoleEmployee}, domain.Employee{ID: "e2"})
	outsider    = domain.NewEmployeeActor(domain.User{ID: "u-e3", Role: domain.RoleEmployee}, domain.Employee{ID: "e3"})
	rep         = domain.NewSalesRepActor(domain.User{ID: "u-s1", Role: domain.RoleSales}, domain.SalesRepresentative{ID: "s1"})
	salesUser   = domain.NewUserActor(domain.User{ID: "u-s2", Role: domain.RoleSales})

	project = domain.Project{ID: "p1", CustomerID: "c1", SalesRepID: ptr("s1"), MemberEmployeeIDs: []string{"e1"}}
)

func task(status domain.TaskStatus, visible bool) policy.TaskTarget {
	return policy.TaskTarget{
		Task: domain.ProjectTask{
			ID: "t1", ProjectID: "p1", Status: status, CustomerVisible: visible,
			AssigneeEmployeeIDs: []string{"e2"},
		},
		Project: project,
	}
}

func TestEmployeePolicy(t *testing.T) {
	e := domain.Employee{ID: "e1"}

	require.True(t, policy.EmployeeAllows(member, policy.View, e))
	require.False(t, policy.EmployeeAllows(outsider, policy.View, e))
	require.True(t, policy.EmployeeAllows(subAdmin, policy.Update, e))
	require.False(t, policy.EmployeeAllows(subAdmin, policy.Delete, e))
	require.True(t, policy.EmployeeAllows(masterAdmin, policy.Delete, e))
	require.False(t, policy.EmployeeAllows(member, policy.Update, e))
}

func TestProjectPolicy(t *testing.T) {
	cases := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"admin", subAdmin, true},
		{"member", member, true},
		{"customer", client, true},
		{"other customer", otherClient, false},
		{"client project on another project", projClient, false},
		{"sales rep on project", rep, true},
		{"employee outside project", outsider, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, policy.ProjectAllows(tc.actor, policy.View, project))
		})
	}

	p2 := domain.Project{ID: "p2", CustomerID: "c1"}
	require.True(t, policy.ProjectAllows(projClient, policy.View, p2))
	require.False(t, policy.ProjectAllows(subAdmin, policy.Delete, project))
}

func TestTaskView(t *testing.T) {
	require.True(t, policy.TaskAllows(member, policy.View, task(domain.TaskTodo, false)))
	require.True(t, policy.TaskAllows(assignee, policy.View, task(domain.TaskTodo, false)))
	require.False(t, policy.TaskAllows(outsider, policy.View, task(domain.TaskTodo, false)))
	require.False(t, policy.TaskAllows(client, policy.View, task(domain.TaskTodo, false)))
	require.True(t, policy.TaskAllows(client, policy.View, task(domain.TaskTodo, true)))
	require.False(t, policy.TaskAllows(otherClient, policy.View, task(domain.TaskTodo, true)))
}

func TestTaskUpdateNeedsMasterAdmin(t *testing.T) {
	tt := task(domain.TaskInProgress, true)
	require.True(t, policy.TaskAllows(masterAdmin, policy.Update, tt))
	require.False(t, policy.TaskAllows(subAdmin, policy.Update, tt))
	require.False(t, policy.TaskAllows(member, policy.Update, tt))
	require.False(t, policy.TaskAllows(client, policy.Update, tt))
}

func TestTaskSalesNeverDeletes(t *testing.T) {
	for _, status := range domain.TaskStatuses {
		for _, visible := range []bool{true, false} {
			tt := task(status, visible)
			require.False(t, policy.TaskAllows(rep, policy.Delete, tt), "rep %s", status)
			require.False(t, policy.TaskAllows(salesUser, policy.Delete, tt), "sales user %s", status)
			require.False(t, policy.TaskAllows(rep, policy.Update, tt), "rep update %s", status)
		}
	}
}

func TestTaskTerminalStatusIsImmutable(t *testing.T) {
	for _, status := range domain.TaskStatuses {
		got := policy.TaskAllows(masterAdmin, policy.Delete, task(status, false))
		if status == domain.TaskCompleted || status == domain.TaskDone {
			require.False(t, got, status)
		} else {
			require.True(t, got, status)
		}
	}
}

func TestTimesheetPolicy(t *testing.T) {
	draft := domain.Timesheet{ID: "ts1", EmployeeID: "e1", Status: domain.TimesheetDraft}
	approved := domain.Timesheet{ID: "ts2", EmployeeID: "e1", Status: domain.TimesheetApproved}

	require.True(t, policy.TimesheetAllows(member, policy.View, draft))
	require.False(t, policy.TimesheetAllows(outsider, policy.View, draft))
	require.True(t, policy.TimesheetAllows(member, policy.Update, draft))
	require.False(t, policy.TimesheetAllows(member, policy.Update, approved))
	require.True(t, policy.TimesheetAllows(subAdmin, policy.Delete, approved))
	require.True(t, policy.TimesheetAllows(member, policy.Create, domain.Timesheet{}))
	require.False(t, policy.TimesheetAllows(client, policy.Create, domain.Timesheet{}))
	require.False(t, policy.TimesheetAllows(member, policy.Approve, draft))
	require.True(t, policy.TimesheetAllows(subAdmin, policy.Approve, draft))
}

func TestLeaveRequestPolicy(t *testing.T) {
	pending := domain.LeaveRequest{ID: "l1", EmployeeID: "e1", Status: domain.LeavePending}
	approved := domain.LeaveRequest{ID: "l2", EmployeeID: "e1", Status: domain.LeaveApproved}

	require.True(t, policy.LeaveRequestAllows(member, policy.Update, pending))
	require.False(t, policy.LeaveRequestAllows(member, policy.Update, approved))
	require.False(t, policy.LeaveRequestAllows(outsider, policy.Delete, pending))
	require.True(t, policy.LeaveRequestAllows(masterAdmin, policy.Delete, approved))
	require.False(t, policy.LeaveRequestAllows(subAdmin, policy.Delete, approved))
	require.True(t, policy.LeaveRequestAllows(subAdmin, policy.Approve, pending))
	require.False(t, policy.LeaveRequestAllows(subAdmin, policy.Create, domain.LeaveRequest{}))
}

func TestPayrollAndLicensePolicy(t *testing.T) {
	item := domain.PayrollItem{ID: "pi1", EmployeeID: "e1"}
	require.True(t, policy.PayrollItemAllows(member, policy.View, item))
	require.False(t, policy.PayrollItemAllows(member, policy.Update, item))
	require.False(t, policy.PayrollItemAllows(client, policy.View, item))

	lic := domain.License{ID: "lic1", SubscriptionID: "sub1", CustomerID: "c1", SalesRepID: ptr("s1")}
	require.True(t, policy.LicenseAllows(client, policy.View, lic))
	require.True(t, policy.LicenseAllows(rep, policy.View, lic))
	require.False(t, policy.LicenseAllows(otherClient, policy.View, lic))
	require.False(t, policy.LicenseAllows(client, policy.Update, lic))
}

func TestDocumentPolicy(t *testing.T) {
	doc := policy.DocumentTarget{
		Document: domain.Document{ID: "d1", UploadedBy: "u-e2", ProjectID: ptr("p1")},
		Project:  &project,
	}
	require.True(t, policy.DocumentAllows(member, policy.View, doc))
	require.True(t, policy.DocumentAllows(assignee, policy.Update, doc))
	require.False(t, policy.DocumentAllows(member, policy.Delete, doc))
	require.False(t, policy.DocumentAllows(client, policy.View, doc))

	owned := policy.DocumentTarget{Document: domain.Document{ID: "d2", UploadedBy: "u-master", CustomerID: ptr("c1")}}
	require.True(t, policy.DocumentAllows(client, policy.View, owned))
	require.False(t, policy.DocumentAllows(otherClient, policy.View, owned))
}

type countingDenials struct{ n map[string]int }

func (c *countingDenials) PolicyDenied(resource, ability string) { c.n[resource+":"+ability]++ }

func TestGateDispatchAndCounts(t *testing.T) {
	denials := &countingDenials{n: map[string]int{}}
	gate := policy.NewGate(denials)
	ctx := context.Background()

	require.True(t, gate.Allows(ctx, masterAdmin, policy.Delete, task(domain.TaskTodo, false)))
	require.False(t, gate.Allows(ctx, masterAdmin, policy.Delete, task(domain.TaskDone, false)))
	require.ErrorIs(t, gate.Authorize(ctx, rep, policy.Delete, task(domain.TaskTodo, false)), policy.ErrDenied)
	require.False(t, gate.Allows(ctx, masterAdmin, policy.View, struct{}{}))

	require.Equal(t, 2, denials.n["project_task:delete"])
	require.Equal(t, 1, denials.n["unknown:view"])
}

func TestGateRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	gate := &policy.Gate{Tracer: provider.Tracer("policy-test")}

	require.False(t, gate.Allows(context.Background(), rep, policy.Delete, task(domain.TaskTodo, false)))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "policy.check", spans[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	require.Equal(t, "project_task", attrs["policy.resource"].AsString())
	require.Equal(t, "delete", attrs["policy.ability"].AsString())
	require.False(t, attrs["policy.allowed"].AsBool())
}
