package portalsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *SDKClient) GetEmployee(ctx context.Context, id string) (*EmployeeResponse, error) {
	return getJSON[EmployeeResponse](ctx, c, "/v1/employees/"+url.PathEscape(id))
}

func (c *SDKClient) GetProject(ctx context.Context, id string) (*ProjectResponse, error) {
	return getJSON[ProjectResponse](ctx, c, "/v1/projects/"+url.PathEscape(id))
}

func (c *SDKClient) GetTask(ctx context.Context, id string) (*TaskResponse, error) {
	return getJSON[TaskResponse](ctx, c, "/v1/tasks/"+url.PathEscape(id))
}

// UpdateTask patches the title and/or status of a task.
func (c *SDKClient) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*TaskResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/tasks/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	var out TaskResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *SDKClient) GetTimesheet(ctx context.Context, id string) (*TimesheetResponse, error) {
	return getJSON[TimesheetResponse](ctx, c, "/v1/timesheets/"+url.PathEscape(id))
}

func (c *SDKClient) ApproveTimesheet(ctx context.Context, id string) (*TimesheetResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/timesheets/"+url.PathEscape(id)+"/approve", nil)
	if err != nil {
		return nil, err
	}
	var out TimesheetResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetLeaveRequest(ctx context.Context, id string) (*LeaveRequestResponse, error) {
	return getJSON[LeaveRequestResponse](ctx, c, "/v1/leave-requests/"+url.PathEscape(id))
}

func (c *SDKClient) GetPayrollItem(ctx context.Context, id string) (*PayrollItemResponse, error) {
	return getJSON[PayrollItemResponse](ctx, c, "/v1/payroll-items/"+url.PathEscape(id))
}

func (c *SDKClient) GetLicense(ctx context.Context, id string) (*LicenseResponse, error) {
	return getJSON[LicenseResponse](ctx, c, "/v1/licenses/"+url.PathEscape(id))
}

func (c *SDKClient) GetDocument(ctx context.Context, id string) (*DocumentResponse, error) {
	return getJSON[DocumentResponse](ctx, c, "/v1/documents/"+url.PathEscape(id))
}
