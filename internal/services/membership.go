//go:generate mockgen -source=membership.go -destination=membership_mock.go -package=services

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// IntentStore persists the membership intent log.
type IntentStore interface {
	Create(ctx context.Context, intent *models.MembershipIntent) error
	ClaimGameSide(ctx context.Context, intentID uuid.UUID) (bool, error)
	SetOrphanRecipients(ctx context.Context, intentID uuid.UUID, recipients models.StringList) error
	ClaimUserSide(ctx context.Context, intentID uuid.UUID) (models.StringList, bool, error)
	Delete(ctx context.Context, intentID uuid.UUID) error
	ListStale(ctx context.Context, before time.Time, limit int) ([]models.MembershipIntent, error)
}

// UserGames groups the games a user is related to.
type UserGames struct {
	Owned    []models.GameDB `json:"games_owned"`
	Joined   []models.GameDB `json:"games_joined"`
	Orphaned []models.GameDB `json:"orphaned_games"`
}

// MembershipService keeps user and game records consistent as users join,
// withdraw from and own games.
//
// Every join and withdraw is written to the intent log first. The game side
// and the user side are then applied in separate transactions. Each
// transaction claims its flag on the stored intent before writing, so a side
// is applied at most once no matter how many replayers race on the row. The
// intent is deleted once both are done. A crash in between leaves a row that
// Resume can finish.
type MembershipService struct {
	users      UserReader
	userWriter UserWriter
	games      GameReader
	gameWriter GameWriter
	intents    IntentStore
	tx         Transactor
	sessions   SessionStore
	kafka      KafkaWriter

	now   func() time.Time
	newID func() uuid.UUID
}

// NewMembershipService creates a new MembershipService instance. kafka may be nil.
func NewMembershipService(
	users UserReader,
	userWriter UserWriter,
	games GameReader,
	gameWriter GameWriter,
	intents IntentStore,
	tx Transactor,
	sessions SessionStore,
	kafka KafkaWriter,
) *MembershipService {
	return &MembershipService{
		users:      users,
		userWriter: userWriter,
		games:      games,
		gameWriter: gameWriter,
		intents:    intents,
		tx:         tx,
		sessions:   sessions,
		kafka:      kafka,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// RecordOwnership adds gameID to the user's games_owned.
func (svc *MembershipService) RecordOwnership(ctx context.Context, userID, gameID string) error {
	user, err := svc.userWriter.Apply(ctx, userID, models.Update{}.Push("games_owned", gameID))
	if err != nil {
		logger.Log.Errorw("failed to record game ownership", "user_id", userID, "game_id", gameID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// Join appends the user to the game's attendees and the game to the user's
// games_joined. Joining twice appends twice on the game side.
func (svc *MembershipService) Join(ctx context.Context, userID, gameID string) error {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	game, err := svc.games.GetByID(ctx, gameID)
	if err != nil {
		logger.Log.Errorw("failed to get game", "game_id", gameID, "err", err)
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}

	intent := svc.newIntent(models.IntentJoin, user, gameID)
	if err := svc.record(ctx, intent); err != nil {
		return err
	}
	if _, err := svc.run(ctx, intent); err != nil {
		return err
	}

	publishEvent(ctx, svc.kafka, newEvent(models.EventGameJoined, userID, gameID))
	return nil
}

// Withdraw removes the user from the game. When the user owned the game it
// becomes ownerless and every remaining attendee gets the game in
// orphaned_games. The user's games_owned is left as is. Withdrawing a user
// that is not attending is a no-op on the game.
func (svc *MembershipService) Withdraw(ctx context.Context, userID, gameID string) error {
	game, err := svc.games.GetByID(ctx, gameID)
	if err != nil {
		logger.Log.Errorw("failed to get game", "game_id", gameID, "err", err)
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}

	intent := svc.newIntent(models.IntentWithdraw, &models.UserDB{UserID: userID}, gameID)
	if err := svc.record(ctx, intent); err != nil {
		return err
	}
	orphaned, err := svc.run(ctx, intent)
	if err != nil {
		return err
	}

	publishEvent(ctx, svc.kafka, newEvent(models.EventGameWithdrawn, userID, gameID))
	if orphaned {
		ev := newEvent(models.EventGameOrphaned, userID, gameID)
		ev.Notified = intent.OrphanRecipients
		publishEvent(ctx, svc.kafka, ev)
	}
	return nil
}

// DeleteAccount withdraws the user from every joined and owned game, then
// deletes the user record and revokes its sessions.
func (svc *MembershipService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	for _, gameID := range distinct(user.GamesJoined, user.GamesOwned) {
		err := svc.Withdraw(ctx, userID, gameID)
		if errors.Is(err, ErrGameNotFound) {
			logger.Log.Warnw("skipping unknown game on account deletion", "user_id", userID, "game_id", gameID)
			continue
		}
		if err != nil {
			return err
		}
	}

	deleted, err := svc.userWriter.Delete(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", userID, "err", err)
		return err
	}
	if deleted == nil || deleted.UserID != userID {
		return ErrAccountNotDeleted
	}

	if n, err := svc.sessions.DeleteByUser(ctx, userID); err != nil {
		logger.Log.Errorw("failed to revoke sessions", "user_id", userID, "err", err)
	} else {
		logger.Log.Infow("sessions revoked", "user_id", userID, "count", n)
	}

	publishEvent(ctx, svc.kafka, newEvent(models.EventAccountDeleted, userID, ""))
	return nil
}

// UserGames expands the user's game id lists into game records.
func (svc *MembershipService) UserGames(ctx context.Context, userID string) (*UserGames, error) {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var out UserGames
	for _, l := range []struct {
		ids  models.StringList
		dest *[]models.GameDB
	}{
		{user.GamesOwned, &out.Owned},
		{user.GamesJoined, &out.Joined},
		{user.OrphanedGames, &out.Orphaned},
	} {
		games, err := svc.games.GetByIDs(ctx, l.ids)
		if err != nil {
			logger.Log.Errorw("failed to get games", "user_id", userID, "err", err)
			return nil, err
		}
		*l.dest = games
	}
	return &out, nil
}

// Resume finishes an intent left behind by an interrupted operation. The
// intent is never recorded again: a row deleted by a concurrent replayer
// makes Resume a no-op.
func (svc *MembershipService) Resume(ctx context.Context, intent models.MembershipIntent) error {
	_, err := svc.run(ctx, &intent)
	return err
}

func (svc *MembershipService) newIntent(op string, user *models.UserDB, gameID string) *models.MembershipIntent {
	return &models.MembershipIntent{
		IntentID:         svc.newID(),
		Op:               op,
		UserID:           user.UserID,
		GameID:           gameID,
		FirstName:        user.FirstName,
		OrphanRecipients: models.StringList{},
		CreatedAt:        svc.now().UTC(),
	}
}

func (svc *MembershipService) record(ctx context.Context, intent *models.MembershipIntent) error {
	if err := svc.intents.Create(ctx, intent); err != nil {
		logger.FromContext(ctx).Errorw("failed to record intent", "intent_id", intent.IntentID, "op", intent.Op, "err", err)
		return err
	}
	return nil
}

// run drives a recorded intent to completion. The flags on intent are only
// hints; the claims on the stored row decide which sides still need writing.
// It reports whether this call orphaned the game.
func (svc *MembershipService) run(ctx context.Context, intent *models.MembershipIntent) (bool, error) {
	log := logger.FromContext(ctx).With("intent_id", intent.IntentID, "op", intent.Op, "user_id", intent.UserID, "game_id", intent.GameID)

	var orphaned bool
	if !intent.GameDone {
		err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
			claimed, err := svc.intents.ClaimGameSide(ctx, intent.IntentID)
			if err != nil || !claimed {
				return err
			}
			var recipients models.StringList
			orphaned, recipients, err = svc.applyGameSide(ctx, intent)
			if err != nil {
				return err
			}
			if len(recipients) > 0 {
				return svc.intents.SetOrphanRecipients(ctx, intent.IntentID, recipients)
			}
			return nil
		})
		if err != nil {
			log.Errorw("failed to apply game side", "err", err)
			return false, err
		}
		intent.GameDone = true
	}

	var claimed bool
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		recipients, ok, err := svc.intents.ClaimUserSide(ctx, intent.IntentID)
		if err != nil || !ok {
			return err
		}
		claimed = true
		intent.OrphanRecipients = recipients
		return svc.applyUserSide(ctx, intent)
	})
	if err != nil {
		log.Errorw("failed to apply user side", "err", err)
		return false, err
	}
	if !claimed && !intent.UserDone {
		log.Infow("intent already finished elsewhere")
		return orphaned, nil
	}
	// a row read with user_done set only lost its delete
	intent.UserDone = true

	if err := svc.intents.Delete(ctx, intent.IntentID); err != nil {
		// both sides are claimed, a leftover row replays as a no-op
		log.Warnw("failed to clear intent", "err", err)
	}
	return orphaned, nil
}

func (svc *MembershipService) applyGameSide(ctx context.Context, intent *models.MembershipIntent) (bool, models.StringList, error) {
	switch intent.Op {
	case models.IntentJoin:
		u := models.Update{}.
			Push("game_attendees", intent.UserID).
			Push("game_attendees_first_names", intent.FirstName)
		game, err := svc.gameWriter.Apply(ctx, intent.GameID, u)
		if err != nil {
			return false, nil, err
		}
		if game == nil {
			logger.Log.Warnw("game vanished before join", "game_id", intent.GameID)
		}
		return false, models.StringList{}, nil

	case models.IntentWithdraw:
		game, err := svc.games.GetByIDForUpdate(ctx, intent.GameID)
		if err != nil {
			return false, nil, err
		}
		if game == nil {
			return false, models.StringList{}, nil
		}

		attendees, names := removeAttendee(game.GameAttendees, game.GameAttendeesFirstNames, intent.UserID)

		var u models.Update
		if len(attendees) != len(game.GameAttendees) {
			u = u.Set("game_attendees", attendees).Set("game_attendees_first_names", names)
		}

		orphaned := game.IsOwnedBy(intent.UserID)
		recipients := models.StringList{}
		if orphaned {
			u = u.Set("game_owner_id", (*string)(nil))
			recipients = distinct(attendees)
		}

		if len(u) > 0 {
			if _, err := svc.gameWriter.Apply(ctx, intent.GameID, u); err != nil {
				return false, nil, err
			}
		}
		return orphaned, recipients, nil
	}
	return false, nil, errors.New("unknown intent op: " + intent.Op)
}

func (svc *MembershipService) applyUserSide(ctx context.Context, intent *models.MembershipIntent) error {
	switch intent.Op {
	case models.IntentJoin:
		return svc.applyToUser(ctx, intent.UserID, models.Update{}.Push("games_joined", intent.GameID))

	case models.IntentWithdraw:
		if err := svc.applyToUser(ctx, intent.UserID, models.Update{}.Pull("games_joined", intent.GameID)); err != nil {
			return err
		}
		for _, recipient := range intent.OrphanRecipients {
			if err := svc.applyToUser(ctx, recipient, models.Update{}.Push("orphaned_games", intent.GameID)); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New("unknown intent op: " + intent.Op)
}

// applyToUser tolerates users deleted in the meantime.
func (svc *MembershipService) applyToUser(ctx context.Context, userID string, u models.Update) error {
	user, err := svc.userWriter.Apply(ctx, userID, u)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Log.Warnw("user vanished during membership update", "user_id", userID)
	}
	return nil
}

// removeAttendee drops every occurrence of userID together with the first
// name at the same position.
func removeAttendee(attendees, names []string, userID string) ([]string, []string) {
	keptIDs := make([]string, 0, len(attendees))
	keptNames := make([]string, 0, len(names))
	for i, id := range attendees {
		if id == userID {
			continue
		}
		keptIDs = append(keptIDs, id)
		if i < len(names) {
			keptNames = append(keptNames, names[i])
		}
	}
	if len(names) > len(attendees) {
		keptNames = append(keptNames, names[len(attendees):]...)
	}
	return keptIDs, keptNames
}
