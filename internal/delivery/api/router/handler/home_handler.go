package handler

import (
	"net/http"

	"cookbook/internal/delivery/api/response"
	deliverycontext "cookbook/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

type landingResponse struct {
	Message       string        `json:"message"`
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
	Token         string        `json:"token,omitempty"`
	Notice        string        `json:"notice,omitempty"`
}

// Landing reports the session identity and echoes the token or message left
// by a login or logout redirect.
func Landing(c echo.Context) error {
	body := landingResponse{
		Message: "Welcome to the Cookbook API",
		Token:   c.QueryParam("token"),
		Notice:  c.QueryParam("message"),
	}

	if user, ok := deliverycontext.GetSessionUser(c); ok {
		resp := toUserResponse(user)
		body.Authenticated = true
		body.User = &resp
	}

	return response.Success(c, http.StatusOK, body)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
