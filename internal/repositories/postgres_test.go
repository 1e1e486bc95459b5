package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func newTestUser(id, email string) *models.UserDB {
	return &models.UserDB{
		UserID:          id,
		EmailAddress:    email,
		CredentialHash:  []byte("hash"),
		CredentialSalt:  []byte("salt"),
		FirstName:       "Ada",
		LastName:        "Lovelace",
		University:      "Princeton",
		Sports:          models.SportPrefs{models.SportSoccer: true},
		GamesOwned:      models.StringList{},
		GamesJoined:     models.StringList{},
		OrphanedGames:   models.StringList{},
		ValidationToken: "token",
		SignupTime:      time.Now().UTC().Truncate(time.Second),
	}
}

func newTestGame(id, owner string) *models.GameDB {
	return &models.GameDB{
		GameID:                  id,
		Type:                    models.SportSoccer,
		Location:                "Princeton University",
		Time:                    "10:00",
		Date:                    "2026-10-20",
		GameOwnerID:             &owner,
		GameOwnerFirstName:      "Ada",
		GameAttendees:           models.StringList{},
		GameAttendeesFirstNames: models.StringList{},
	}
}

func TestPostgresRepositories(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	userRead := NewUserReadRepository(db)
	userWrite := NewUserWriteRepository(db)
	gameRead := NewGameReadRepository(db)
	gameWrite := NewGameWriteRepository(db)
	intents := NewIntentRepository(db)
	tr := NewTransactor(db)

	t.Run("save and read user", func(t *testing.T) {
		require.NoError(t, userWrite.Save(ctx, newTestUser("1000000001", "ada@example.com")))

		user, err := userRead.GetByField(ctx, "email_address", "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "1000000001", user.UserID)
		assert.Equal(t, []byte("hash"), user.CredentialHash)
		assert.True(t, user.Sports[models.SportSoccer])
		assert.Empty(t, user.GamesJoined)

		exists, err := userRead.Exists(ctx, "1000000001")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate keys name their column", func(t *testing.T) {
		err := userWrite.Save(ctx, newTestUser("1000000002", "ada@example.com"))
		assert.ErrorIs(t, err, models.ErrDuplicate)
		assert.Equal(t, "email_address", models.DuplicateField(err))

		err = userWrite.Save(ctx, newTestUser("1000000001", "other@example.com"))
		assert.Equal(t, "user_id", models.DuplicateField(err))

		named := newTestUser("1000000003", "grace@example.com")
		username := "ada"
		named.Username = &username
		require.NoError(t, userWrite.Save(ctx, named))

		clash := newTestUser("1000000004", "fresh@example.com")
		clash.Username = &username
		err = userWrite.Save(ctx, clash)
		assert.ErrorIs(t, err, models.ErrDuplicate)
		assert.Equal(t, "username", models.DuplicateField(err))
	})

	t.Run("missing user is absent not an error", func(t *testing.T) {
		user, err := userRead.GetByID(ctx, "9999999999")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user set append is idempotent and remove drops", func(t *testing.T) {
		u := models.Update{}.Push("games_joined", "G1").Push("games_joined", "G1").Push("orphaned_games", "G2")
		user, err := userWrite.Apply(ctx, "1000000001", u)
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"G1"}, user.GamesJoined)
		assert.Equal(t, models.StringList{"G2"}, user.OrphanedGames)

		user, err = userWrite.Apply(ctx, "1000000001", models.Update{}.Pull("games_joined", "G1"))
		require.NoError(t, err)
		assert.Empty(t, user.GamesJoined)

		user, err = userWrite.Apply(ctx, "1000000001", models.Update{}.Set(models.SportTennis, true).Set("university", "MIT"))
		require.NoError(t, err)
		assert.True(t, user.Sports[models.SportTennis])
		assert.True(t, user.Sports[models.SportSoccer])
		assert.Equal(t, "MIT", user.University)
	})

	t.Run("game append keeps duplicates and overwrite replaces", func(t *testing.T) {
		require.NoError(t, gameWrite.Save(ctx, newTestGame("GAME00000001", "1000000001")))

		u := models.Update{}.Push("game_attendees", "u1").Push("game_attendees_first_names", "Bo")
		_, err := gameWrite.Apply(ctx, "GAME00000001", u)
		require.NoError(t, err)
		game, err := gameWrite.Apply(ctx, "GAME00000001", u)
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"u1", "u1"}, game.GameAttendees)
		assert.Equal(t, models.StringList{"Bo", "Bo"}, game.GameAttendeesFirstNames)

		game, err = gameWrite.Apply(ctx, "GAME00000001", models.Update{}.Set("game_attendees", []string{}))
		require.NoError(t, err)
		assert.Empty(t, game.GameAttendees)

		game, err = gameWrite.Apply(ctx, "GAME00000001", models.Update{}.Set("game_owner_id", (*string)(nil)))
		require.NoError(t, err)
		assert.Nil(t, game.GameOwnerID)
	})

	t.Run("apply on missing game returns nil", func(t *testing.T) {
		game, err := gameWrite.Apply(ctx, "NOPE", models.Update{}.Set("location", "x"))
		assert.NoError(t, err)
		assert.Nil(t, game)
	})

	t.Run("get by ids skips unknown", func(t *testing.T) {
		games, err := gameRead.GetByIDs(ctx, []string{"NOPE", "GAME00000001"})
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "GAME00000001", games[0].GameID)
	})

	t.Run("scan filters by location and type", func(t *testing.T) {
		other := newTestGame("GAME00000002", "1000000001")
		other.Type = models.SportTennis
		other.Location = "Rutgers"
		require.NoError(t, gameWrite.Save(ctx, other))

		games, err := gameRead.Scan(ctx, models.GameFilter{Location: "princeton"})
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "GAME00000001", games[0].GameID)

		games, err = gameRead.Scan(ctx, models.GameFilter{Type: models.SportTennis})
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "GAME00000002", games[0].GameID)

		games, err = gameRead.Scan(ctx, models.GameFilter{})
		require.NoError(t, err)
		assert.Len(t, games, 2)
	})

	t.Run("scan matches location literally", func(t *testing.T) {
		wild := newTestGame("GAME00000003", "1000000001")
		wild.Location = "Court_1 (100% booked)"
		require.NoError(t, gameWrite.Save(ctx, wild))

		for _, location := range []string{"%", "_", "0%"} {
			games, err := gameRead.Scan(ctx, models.GameFilter{Location: location})
			require.NoError(t, err)
			require.Len(t, games, 1, location)
			assert.Equal(t, "GAME00000003", games[0].GameID)
		}

		games, err := gameRead.Scan(ctx, models.GameFilter{Location: "n%u"})
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("intent lifecycle inside transaction", func(t *testing.T) {
		intent := &models.MembershipIntent{
			IntentID:         uuid.New(),
			Op:               models.IntentJoin,
			UserID:           "1000000001",
			GameID:           "GAME00000001",
			FirstName:        "Ada",
			OrphanRecipients: models.StringList{},
			CreatedAt:        time.Now().Add(-time.Hour),
		}
		require.NoError(t, intents.Create(ctx, intent))

		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			claimed, err := intents.ClaimGameSide(ctx, intent.IntentID)
			require.NoError(t, err)
			require.True(t, claimed)
			return intents.SetOrphanRecipients(ctx, intent.IntentID, models.StringList{"x"})
		})
		require.NoError(t, err)

		claimed, err := intents.ClaimGameSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.False(t, claimed, "game side is claimed once")

		stale, err := intents.ListStale(ctx, time.Now(), 10)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.True(t, stale[0].GameDone)
		assert.False(t, stale[0].UserDone)
		assert.Equal(t, models.StringList{"x"}, stale[0].OrphanRecipients)

		recipients, claimed, err := intents.ClaimUserSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, models.StringList{"x"}, recipients)

		_, claimed, err = intents.ClaimUserSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.False(t, claimed, "user side is claimed once")

		require.NoError(t, intents.Delete(ctx, intent.IntentID))

		claimed, err = intents.ClaimGameSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.False(t, claimed, "deleted intent cannot be claimed")

		stale, err = intents.ListStale(ctx, time.Now(), 10)
		require.NoError(t, err)
		assert.Empty(t, stale)
	})

	t.Run("rolled back claim can be retried", func(t *testing.T) {
		intent := &models.MembershipIntent{
			IntentID:         uuid.New(),
			Op:               models.IntentJoin,
			UserID:           "1000000001",
			GameID:           "GAME00000001",
			OrphanRecipients: models.StringList{},
			CreatedAt:        time.Now(),
		}
		require.NoError(t, intents.Create(ctx, intent))

		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := intents.ClaimGameSide(ctx, intent.IntentID); err != nil {
				return err
			}
			return errors.New("game write failed")
		})
		require.Error(t, err)

		_, claimed, err := intents.ClaimUserSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.False(t, claimed, "user side waits for the game side")

		claimed, err = intents.ClaimGameSide(ctx, intent.IntentID)
		require.NoError(t, err)
		assert.True(t, claimed)
		require.NoError(t, intents.Delete(ctx, intent.IntentID))
	})

	t.Run("rolled back transaction leaves no trace", func(t *testing.T) {
		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := gameWrite.Apply(ctx, "GAME00000001", models.Update{}.Set("location", "Elsewhere")); err != nil {
				return err
			}
			return fmt.Errorf("abort")
		})
		assert.Error(t, err)

		game, err := gameRead.GetByID(ctx, "GAME00000001")
		require.NoError(t, err)
		assert.Equal(t, "Princeton University", game.Location)
	})

	t.Run("delete user returns removed record", func(t *testing.T) {
		deleted, err := userWrite.Delete(ctx, "1000000001")
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "1000000001", deleted.UserID)

		deleted, err = userWrite.Delete(ctx, "1000000001")
		assert.NoError(t, err)
		assert.Nil(t, deleted)
	})
}
