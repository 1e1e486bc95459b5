//go:generate mockgen -source=membership.go -destination=membership_mock.go -package=handlers

package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/services"
)

// Joiner defines the interface that the service must implement.
type Joiner interface {
	Join(ctx context.Context, userID, gameID string) error
}

// Withdrawer defines the interface that the service must implement.
type Withdrawer interface {
	Withdraw(ctx context.Context, userID, gameID string) error
}

// AccountDeleter defines the interface that the service must implement.
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// UserGamesReader defines the interface that the service must implement.
type UserGamesReader interface {
	UserGames(ctx context.Context, userID string) (*services.UserGames, error)
}

// GameRequest names a single game
// swagger:model GameRequest
type GameRequest struct {
	// required: true
	// default: ABCDEF123456
	GameID string `json:"game_id"`
}

// membershipHandler decodes a GameRequest and applies op for the session user.
func membershipHandler(op func(ctx context.Context, userID, gameID string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var req GameRequest
		if !decode(w, r, &req) {
			return
		}
		if req.GameID == "" {
			writeError(w, r, &services.MissingFieldError{Field: "game_id"})
			return
		}

		if err := op(r.Context(), userID, req.GameID); err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, req.GameID)
	}
}

// NewJoinGameHandler returns an HTTP handler for joining a game.
// @Summary Join a game
// @Description Adds the caller to the game's attendees and the game to the caller's games_joined.
// @Tags membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameRequest body handlers.GameRequest true "Game"
// @Success 200 {object} handlers.Response "Game id in message"
// @Failure 404 {object} handlers.Response "Game not found"
// @Router /games/join [post]
func NewJoinGameHandler(svc Joiner) http.HandlerFunc {
	return membershipHandler(svc.Join)
}

// NewWithdrawGameHandler returns an HTTP handler for leaving a game.
// @Summary Withdraw from a game
// @Description Removes the caller from the game. An owner leaving makes the game ownerless and flags it in every remaining attendee's orphaned_games.
// @Tags membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameRequest body handlers.GameRequest true "Game"
// @Success 200 {object} handlers.Response "Game id in message"
// @Failure 404 {object} handlers.Response "Game not found"
// @Router /games/withdraw [post]
func NewWithdrawGameHandler(svc Withdrawer) http.HandlerFunc {
	return membershipHandler(svc.Withdraw)
}

// NewUserGamesHandler returns an HTTP handler listing the caller's games.
// @Summary List my games
// @Description Returns the caller's owned, joined and orphaned games.
// @Tags membership
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.Response "services.UserGames in message"
// @Router /me/games [get]
func NewUserGamesHandler(svc UserGamesReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		games, err := svc.UserGames(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, games)
	}
}

// NewDeleteAccountHandler returns an HTTP handler deleting the caller's account.
// @Summary Delete my account
// @Description Withdraws the caller from every joined and owned game, then deletes the account and its sessions.
// @Tags membership
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.Response
// @Failure 500 {object} handlers.Response
// @Router /me [delete]
func NewDeleteAccountHandler(svc AccountDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteAccount(r.Context(), userID); err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, "Account deleted")
	}
}
