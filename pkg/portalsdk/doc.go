/*
Package portalsdk is a small client for the portal gate service.

A client keeps the session cookie in its own cookie jar, so one SDKClient
represents one browser:

	client, err := portalsdk.NewSDKClient("http://localhost:8080")

	outcome, err := client.Login(ctx, "employee", "eve@example.com", "secret", "")
	if !outcome.Succeeded {
		// back on the login page, outcome.Location is the login path
	}

	me, err := client.Me(ctx)
	task, err := client.GetTask(ctx, "t1")

Policy denials come back as *APIError with StatusCode 403 and Code
"forbidden"; the server never explains a denial.
*/
package portalsdk
