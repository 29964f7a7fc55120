package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/policy"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/portalsdk"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

var errInvalidTaskStatus = &httpx.APIError{
	StatusCode:  http.StatusUnprocessableEntity,
	Code:        "invalid_status",
	Description: "unknown task status",
}

// ResourceHandler serves the policy-gated resource API. Denials are a bare
// 403 and never reveal why.
type ResourceHandler struct {
	Store store.Store
	Gate  *policy.Gate
}

// load runs get and writes 404 or 500 when it fails. It reports whether
// the caller should continue.
func load[T any](w http.ResponseWriter, r *http.Request, get func(ctx context.Context, id string) (T, error)) (T, bool) {
	v, err := get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		httpx.ErrNotFound.Write(w)
		return v, false
	}
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to load resource", "path", r.URL.Path, "error", err)
		httpx.ErrServerError.Write(w)
		return v, false
	}
	return v, true
}

// allowed checks ability on resource for the request's actor and writes 403
// when it is denied.
func (h *ResourceHandler) allowed(w http.ResponseWriter, r *http.Request, ability policy.Ability, resource any) bool {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthenticated.Write(w)
		return false
	}
	if !h.Gate.Allows(r.Context(), actor, ability, resource) {
		httpx.Forbidden(w)
		return false
	}
	return true
}

// GetEmployee godoc
//
//	@Summary	Get employee
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Employee ID"
//	@Success	200	{object}	portalsdk.EmployeeResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/employees/{id} [get]
func (h *ResourceHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := load(w, r, h.Store.Employees().GetEmployeeByID)
	if !ok || !h.allowed(w, r, policy.View, e) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.EmployeeResponse{ID: e.ID, Name: e.Name, Status: string(e.Status)})
}

// GetProject godoc
//
//	@Summary	Get project
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	portalsdk.ProjectResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/projects/{id} [get]
func (h *ResourceHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := load(w, r, h.Store.Projects().GetProjectByID)
	if !ok || !h.allowed(w, r, policy.View, p) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, projectResponse(p))
}

func (h *ResourceHandler) getTaskTarget(ctx context.Context, id string) (policy.TaskTarget, error) {
	t, err := h.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		return policy.TaskTarget{}, err
	}
	p, err := h.Store.Projects().GetProjectByID(ctx, t.ProjectID)
	if err != nil {
		return policy.TaskTarget{}, err
	}
	return policy.TaskTarget{Task: t, Project: p}, nil
}

// GetTask godoc
//
//	@Summary	Get project task
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	portalsdk.TaskResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/tasks/{id} [get]
func (h *ResourceHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, ok := load(w, r, h.getTaskTarget)
	if !ok || !h.allowed(w, r, policy.View, t) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, taskResponse(t.Task))
}

// UpdateTask godoc
//
//	@Summary	Update project task
//	@Tags		Resources
//	@Accept		json
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id		path		string						true	"Task ID"
//	@Param		body	body		portalsdk.UpdateTaskRequest	true	"Fields to change"
//	@Success	200		{object}	portalsdk.TaskResponse
//	@Failure	400		{object}	portalsdk.ErrorResponse
//	@Failure	401		{object}	portalsdk.ErrorResponse
//	@Failure	403		{string}	string	"Denied"
//	@Failure	404		{object}	portalsdk.ErrorResponse
//	@Failure	422		{object}	portalsdk.ErrorResponse
//	@Router		/v1/tasks/{id} [patch]
func (h *ResourceHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var body portalsdk.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.ErrBadRequest.Write(w)
		return
	}

	t, ok := load(w, r, h.getTaskTarget)
	if !ok || !h.allowed(w, r, policy.Update, t) {
		return
	}

	task := t.Task
	if body.Title != nil {
		task.Title = strings.TrimSpace(*body.Title)
	}
	if body.Status != nil {
		status := domain.TaskStatus(*body.Status)
		if !slices.Contains(domain.TaskStatuses, status) {
			errInvalidTaskStatus.Write(w)
			return
		}
		task.Status = status
	}

	if err := h.Store.Tasks().UpdateTask(r.Context(), task.ID, task.Title, task.Status); err != nil {
		slogx.FromContext(r.Context()).Error("failed to update task", "task_id", task.ID, "error", err)
		httpx.ErrServerError.Write(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// DeleteTask godoc
//
//	@Summary	Delete project task
//	@Tags		Resources
//	@Security	SessionCookie
//	@Param		id	path	string	true	"Task ID"
//	@Success	204	{string}	string	"No Content"
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/tasks/{id} [delete]
func (h *ResourceHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	t, ok := load(w, r, h.getTaskTarget)
	if !ok || !h.allowed(w, r, policy.Delete, t) {
		return
	}

	if err := h.Store.Tasks().DeleteTask(r.Context(), t.Task.ID); err != nil {
		slogx.FromContext(r.Context()).Error("failed to delete task", "task_id", t.Task.ID, "error", err)
		httpx.ErrServerError.Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTimesheet godoc
//
//	@Summary	Get timesheet
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Timesheet ID"
//	@Success	200	{object}	portalsdk.TimesheetResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/timesheets/{id} [get]
func (h *ResourceHandler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	t, ok := load(w, r, h.Store.Timesheets().GetTimesheetByID)
	if !ok || !h.allowed(w, r, policy.View, t) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, timesheetResponse(t))
}

// ApproveTimesheet godoc
//
//	@Summary	Approve timesheet
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Timesheet ID"
//	@Success	200	{object}	portalsdk.TimesheetResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/timesheets/{id}/approve [post]
func (h *ResourceHandler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	t, ok := load(w, r, h.Store.Timesheets().GetTimesheetByID)
	if !ok || !h.allowed(w, r, policy.Approve, t) {
		return
	}

	if err := h.Store.Timesheets().UpdateTimesheetStatus(r.Context(), t.ID, domain.TimesheetApproved); err != nil {
		slogx.FromContext(r.Context()).Error("failed to approve timesheet", "timesheet_id", t.ID, "error", err)
		httpx.ErrServerError.Write(w)
		return
	}
	t.Status = domain.TimesheetApproved
	httpx.WriteJSON(w, http.StatusOK, timesheetResponse(t))
}

// GetLeaveRequest godoc
//
//	@Summary	Get leave request
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Leave request ID"
//	@Success	200	{object}	portalsdk.LeaveRequestResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/leave-requests/{id} [get]
func (h *ResourceHandler) GetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	l, ok := load(w, r, h.Store.LeaveRequests().GetLeaveRequestByID)
	if !ok || !h.allowed(w, r, policy.View, l) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.LeaveRequestResponse{ID: l.ID, EmployeeID: l.EmployeeID, Status: string(l.Status)})
}

// GetPayrollItem godoc
//
//	@Summary	Get payroll item
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Payroll item ID"
//	@Success	200	{object}	portalsdk.PayrollItemResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/payroll-items/{id} [get]
func (h *ResourceHandler) GetPayrollItem(w http.ResponseWriter, r *http.Request) {
	p, ok := load(w, r, h.Store.PayrollItems().GetPayrollItemByID)
	if !ok || !h.allowed(w, r, policy.View, p) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.PayrollItemResponse{ID: p.ID, EmployeeID: p.EmployeeID, AmountCents: p.AmountCents})
}

// GetLicense godoc
//
//	@Summary	Get license
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"License ID"
//	@Success	200	{object}	portalsdk.LicenseResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/licenses/{id} [get]
func (h *ResourceHandler) GetLicense(w http.ResponseWriter, r *http.Request) {
	l, ok := load(w, r, h.Store.Licenses().GetLicenseByID)
	if !ok || !h.allowed(w, r, policy.View, l) {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.LicenseResponse{
		ID:             l.ID,
		SubscriptionID: l.SubscriptionID,
		CustomerID:     l.CustomerID,
		SalesRepID:     deref(l.SalesRepID),
	})
}

func (h *ResourceHandler) getDocumentTarget(ctx context.Context, id string) (policy.DocumentTarget, error) {
	d, err := h.Store.Documents().GetDocumentByID(ctx, id)
	if err != nil {
		return policy.DocumentTarget{}, err
	}
	target := policy.DocumentTarget{Document: d}
	if d.ProjectID == nil {
		return target, nil
	}

	p, err := h.Store.Projects().GetProjectByID(ctx, *d.ProjectID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// project gone, judge the document on its own
	case err != nil:
		return policy.DocumentTarget{}, err
	default:
		target.Project = &p
	}
	return target, nil
}

// GetDocument godoc
//
//	@Summary	Get document
//	@Tags		Resources
//	@Produce	json
//	@Security	SessionCookie
//	@Param		id	path		string	true	"Document ID"
//	@Success	200	{object}	portalsdk.DocumentResponse
//	@Failure	401	{object}	portalsdk.ErrorResponse
//	@Failure	403	{string}	string	"Denied"
//	@Failure	404	{object}	portalsdk.ErrorResponse
//	@Router		/v1/documents/{id} [get]
func (h *ResourceHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	t, ok := load(w, r, h.getDocumentTarget)
	if !ok || !h.allowed(w, r, policy.View, t) {
		return
	}
	d := t.Document
	httpx.WriteJSON(w, http.StatusOK, portalsdk.DocumentResponse{
		ID:         d.ID,
		Name:       d.Name,
		UploadedBy: d.UploadedBy,
		CustomerID: deref(d.CustomerID),
		EmployeeID: deref(d.EmployeeID),
		ProjectID:  deref(d.ProjectID),
	})
}

func projectResponse(p domain.Project) portalsdk.ProjectResponse {
	members := p.MemberEmployeeIDs
	if members == nil {
		members = []string{}
	}
	return portalsdk.ProjectResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		SalesRepID: deref(p.SalesRepID),
		Name:       p.Name,
		Members:    members,
	}
}

func taskResponse(t domain.ProjectTask) portalsdk.TaskResponse {
	assignees := t.AssigneeEmployeeIDs
	if assignees == nil {
		assignees = []string{}
	}
	return portalsdk.TaskResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Status:          string(t.Status),
		CustomerVisible: t.CustomerVisible,
		Assignees:       assignees,
	}
}

func timesheetResponse(t domain.Timesheet) portalsdk.TimesheetResponse {
	return portalsdk.TimesheetResponse{ID: t.ID, EmployeeID: t.EmployeeID, Status: string(t.Status)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
