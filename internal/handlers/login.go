//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/services"
)

// Authenticator defines the interface that the service must implement.
type Authenticator interface {
	Authenticate(ctx context.Context, field, value, password string) (*services.Account, error)
	Project(account *services.Account, fields []string) (map[string]any, error)
}

// LoginRequest represents the JSON body for login. Either the email address
// or the username identifies the account.
// swagger:model LoginRequest
type LoginRequest struct {
	// default: ada@example.com
	EmailAddress string `json:"email_address,omitempty"`

	// default: ada
	Username string `json:"username,omitempty"`

	// required: true
	// default: this_is_long_enough
	Password string `json:"password"`

	// Account fields to return, defaults to the public profile and the session token
	Fields []string `json:"fields,omitempty"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary Log in
// @Description Checks the credentials and opens a new session. The session token is returned in the account view.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "User credentials"
// @Success 200 {object} handlers.Response "Account view in message"
// @Failure 400 {object} handlers.Response "Invalid request"
// @Failure 401 {object} handlers.Response "Incorrect email or password"
// @Router /login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decode(w, r, &req) {
			return
		}

		field, value := "email_address", req.EmailAddress
		if value == "" && req.Username != "" {
			field, value = "username", req.Username
		}

		account, err := svc.Authenticate(r.Context(), field, value, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		view, err := svc.Project(account, req.Fields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, view)
	}
}
