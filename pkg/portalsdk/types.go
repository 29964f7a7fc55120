package portalsdk

// ErrorResponse is the JSON error body of the service.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ValidationErrorResponse is returned with 422 when the login form is
// malformed. Fields maps form field names to messages.
type ValidationErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// MeResponse describes the actor of the current session.
type MeResponse struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Portal     string `json:"portal"`
	Guard      string `json:"guard"`
	ActorType  string `json:"actor_type"`
	IsAdmin    bool   `json:"is_admin"`
	EmployeeID string `json:"employee_id,omitempty"`
	SalesRepID string `json:"sales_rep_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

type EmployeeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ProjectResponse struct {
	ID         string   `json:"id"`
	CustomerID string   `json:"customer_id"`
	SalesRepID string   `json:"sales_rep_id,omitempty"`
	Name       string   `json:"name"`
	Members    []string `json:"members"`
}

type TaskResponse struct {
	ID              string   `json:"id"`
	ProjectID       string   `json:"project_id"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	CustomerVisible bool     `json:"customer_visible"`
	Assignees       []string `json:"assignees"`
}

// UpdateTaskRequest is the PATCH body of a task. Nil fields are unchanged.
type UpdateTaskRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

type TimesheetResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}

type LeaveRequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}

type PayrollItemResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	AmountCents int64  `json:"amount_cents"`
}

type LicenseResponse struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`
	CustomerID     string `json:"customer_id"`
	SalesRepID     string `json:"sales_rep_id,omitempty"`
}

type DocumentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UploadedBy string `json:"uploaded_by"`
	CustomerID string `json:"customer_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}
