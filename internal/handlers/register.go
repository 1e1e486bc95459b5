//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/sbilibin2017/sport-together/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, reg services.Registration) (string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email address, unique per account
	// required: true
	// default: ada@example.com
	EmailAddress string `json:"email_address"`

	// Password
	// required: true
	// default: this_is_long_enough
	Password string `json:"password"`

	// Optional login name
	// default: ada
	Username *string `json:"username,omitempty"`

	// required: true
	// default: Ada
	FirstName string `json:"first_name"`

	// required: true
	// default: Lovelace
	LastName string `json:"last_name"`

	// required: true
	// default: Princeton University
	University string `json:"university"`

	// Sport opt-in flags, each one required
	Tennis     *bool `json:"tennis"`
	Frisbee    *bool `json:"frisbee"`
	Soccer     *bool `json:"soccer"`
	Running    *bool `json:"running"`
	Basketball *bool `json:"basketball"`
}

func (req *RegisterRequest) registration() services.Registration {
	sports := map[string]bool{}
	for sport, flag := range map[string]*bool{
		models.SportTennis:     req.Tennis,
		models.SportFrisbee:    req.Frisbee,
		models.SportSoccer:     req.Soccer,
		models.SportRunning:    req.Running,
		models.SportBasketball: req.Basketball,
	} {
		if flag != nil {
			sports[sport] = *flag
		}
	}
	username := req.Username
	if username != nil && strings.TrimSpace(*username) == "" {
		username = nil
	}
	return services.Registration{
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		University:   req.University,
		Username:     username,
		Sports:       sports,
	}
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account. Email addresses are unique. Every sport flag must be present.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.Response "New user id in message"
// @Failure 400 {object} handlers.Response "Missing field / invalid request"
// @Failure 409 {object} handlers.Response "Email already taken"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decode(w, r, &req) {
			return
		}

		userID, err := svc.Register(r.Context(), req.registration())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusCreated, userID)
	}
}
