package portalsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var loginPaths = map[string]string{
	"web":      "/login",
	"admin":    "/admin/login",
	"employee": "/employee/login",
	"sales":    "/sales/login",
	"support":  "/support/login",
}

// LoginOutcome describes where the service sent the browser after a login
// form submission.
type LoginOutcome struct {
	Succeeded bool
	Location  string
}

// Login submits the login form of portal. A rejected login is not an error:
// the service redirects back to the login page and Succeeded is false.
func (c *SDKClient) Login(ctx context.Context, portal, email, password, redirect string) (*LoginOutcome, error) {
	path, ok := loginPaths[portal]
	if !ok {
		return nil, fmt.Errorf("unknown portal %q", portal)
	}
	if redirect != "" {
		path += "?" + url.Values{"redirect": {redirect}}.Encode()
	}

	form := url.Values{"email": {email}, "password": {password}}
	resp, err := c.doRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusFound {
		if err := parseErrorResponse(resp, body); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	return &LoginOutcome{
		Succeeded: location != loginPaths[portal],
		Location:  location,
	}, nil
}

// Logout ends the current portal login and returns the login page it
// redirected to.
func (c *SDKClient) Logout(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/logout", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		if err := parseErrorResponse(resp, body); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}

// Me returns the actor of the current session.
func (c *SDKClient) Me(ctx context.Context) (*MeResponse, error) {
	return getJSON[MeResponse](ctx, c, "/v1/me")
}
