//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=handlers

package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/sbilibin2017/sport-together/internal/services"
)

// ProfileReader defines the interface that the service must implement.
type ProfileReader interface {
	GetUser(ctx context.Context, userID string) (*models.UserDB, error)
	Project(account *services.Account, fields []string) (map[string]any, error)
}

// ProfileUpdater defines the interface that the service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*models.UserDB, error)
	Project(account *services.Account, fields []string) (map[string]any, error)
}

// profileFields is the view of the caller's own record.
var profileFields = []string{
	"user_id", "email_address", "username", "first_name", "last_name", "university", "sports",
	"games_owned", "games_joined", "orphaned_games", "already_validated", "signup_time",
}

// NewProfileHandler returns an HTTP handler for the caller's profile.
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.Response "Profile in message"
// @Failure 404 {object} handlers.Response "User not found"
// @Router /me [get]
func NewProfileHandler(svc ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		view, err := svc.Project(&services.Account{User: *user}, profileFields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, view)
	}
}

// NewUpdateProfileHandler returns an HTTP handler overwriting profile fields.
// @Summary Update my profile
// @Description Overwrites first_name, last_name, university or sport flags.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param fields body object true "Fields to overwrite"
// @Success 200 {object} handlers.Response "Profile in message"
// @Failure 400 {object} handlers.Response "Unknown field"
// @Router /me/update [post]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var fields map[string]any
		if !decode(w, r, &fields) {
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, fields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		view, err := svc.Project(&services.Account{User: *user}, profileFields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, view)
	}
}
