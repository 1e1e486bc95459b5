//go:generate mockgen -source=games.go -destination=games_mock.go -package=handlers

package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/sbilibin2017/sport-together/internal/services"
)

// GameCreator defines the interface that the service must implement.
type GameCreator interface {
	CreateGame(ctx context.Context, ownerID string, in services.NewGame) (*models.GameDB, error)
}

// GameLister defines the interface that the service must implement.
type GameLister interface {
	ReadGames(ctx context.Context, userID string, gameIDs []string, owned bool) ([]models.GameDB, error)
}

// GameSearcher defines the interface that the service must implement.
type GameSearcher interface {
	SearchGames(ctx context.Context, filter models.GameFilter) ([]models.GameDB, error)
}

// GameUpdater defines the interface that the service must implement.
type GameUpdater interface {
	UpdateOwnedGame(ctx context.Context, userID, gameID string, fields map[string]any, appendMode bool) (*models.GameDB, error)
}

// CreateGameRequest represents the JSON body for game creation
// swagger:model CreateGameRequest
type CreateGameRequest struct {
	// One of tennis, frisbee, soccer, running, basketball
	// required: true
	// default: soccer
	Type string `json:"type"`

	// required: true
	// default: Princeton Stadium
	Location string `json:"location"`

	// required: true
	// default: 10:00
	Time string `json:"time"`

	// required: true
	// default: 2026-10-20
	Date string `json:"date"`
}

// ReadGamesRequest selects games by id, or the caller's own games when ids are omitted
// swagger:model ReadGamesRequest
type ReadGamesRequest struct {
	GameIDs []string `json:"game_ids,omitempty"`

	// With no ids, true reads owned games and false joined games
	Owned bool `json:"owned,omitempty"`
}

// UpdateGameRequest represents the JSON body for a game update
// swagger:model UpdateGameRequest
type UpdateGameRequest struct {
	// required: true
	GameID string `json:"game_id"`

	// Fields to write. List values replace the stored list unless append is set.
	Fields map[string]any `json:"fields"`

	// Append each string value to the list field of the same name
	Append bool `json:"append,omitempty"`
}

// GamesResponse carries a list of games
// swagger:model GamesResponse
type GamesResponse struct {
	Success bool            `json:"success"`
	Message []models.GameDB `json:"message"`
}

// NewCreateGameHandler returns an HTTP handler for game creation.
// @Summary Create a game
// @Description Creates a game owned by the caller and records it in the caller's games_owned.
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createGameRequest body handlers.CreateGameRequest true "Game"
// @Success 201 {object} handlers.Response "Created game in message"
// @Failure 400 {object} handlers.Response "Missing field / unsupported sport"
// @Failure 401 {object} handlers.Response "Unauthorized"
// @Router /games [post]
func NewCreateGameHandler(svc GameCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var req CreateGameRequest
		if !decode(w, r, &req) {
			return
		}

		game, err := svc.CreateGame(r.Context(), userID, services.NewGame{
			Type:     req.Type,
			Location: req.Location,
			Time:     req.Time,
			Date:     req.Date,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusCreated, game)
	}
}

// NewReadGamesHandler returns an HTTP handler for batch game lookup.
// @Summary Read games
// @Description Returns the games named by game_ids, skipping unknown ids. Without ids, reads the caller's owned or joined games.
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param readGamesRequest body handlers.ReadGamesRequest true "Selection"
// @Success 200 {object} handlers.GamesResponse
// @Failure 401 {object} handlers.Response "Unauthorized"
// @Router /games/read [post]
func NewReadGamesHandler(svc GameLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var req ReadGamesRequest
		if !decode(w, r, &req) {
			return
		}

		games, err := svc.ReadGames(r.Context(), userID, req.GameIDs, req.Owned)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, GamesResponse{Success: true, Message: games})
	}
}

// NewSearchGamesHandler returns an HTTP handler for searching games.
// @Summary Search games
// @Description Lists games whose location contains the given text and whose type matches, both optional.
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param filter body models.GameFilter true "Filter"
// @Success 200 {object} handlers.GamesResponse
// @Failure 400 {object} handlers.Response "Unsupported sport"
// @Router /games/search [post]
func NewSearchGamesHandler(svc GameSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter models.GameFilter
		if !decode(w, r, &filter) {
			return
		}

		games, err := svc.SearchGames(r.Context(), filter)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, GamesResponse{Success: true, Message: games})
	}
}

// NewUpdateGameHandler returns an HTTP handler for owner updates of a game.
// @Summary Update a game
// @Description Overwrites the given fields, or appends to list fields when append is set. Only the owner may update.
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateGameRequest body handlers.UpdateGameRequest true "Update"
// @Success 200 {object} handlers.Response "Updated game in message"
// @Failure 400 {object} handlers.Response "Invalid update"
// @Failure 403 {object} handlers.Response "Not the owner"
// @Failure 404 {object} handlers.Response "Game not found"
// @Router /games/update [post]
func NewUpdateGameHandler(svc GameUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var req UpdateGameRequest
		if !decode(w, r, &req) {
			return
		}
		if req.GameID == "" {
			writeError(w, r, &services.MissingFieldError{Field: "game_id"})
			return
		}

		game, err := svc.UpdateOwnedGame(r.Context(), userID, req.GameID, req.Fields, req.Append)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeSuccess(w, http.StatusOK, game)
	}
}
