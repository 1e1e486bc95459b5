package repositories

import (
	"testing"

	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClause(t *testing.T) {
	owner := "0123456789"

	tests := []struct {
		name     string
		update   models.Update
		fields   map[string]models.FieldKind
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "replace text",
			update:   models.Update{}.Set("location", "Princeton"),
			fields:   models.GameFields,
			wantSQL:  "location = $2",
			wantArgs: []any{"Princeton"},
		},
		{
			name:     "quoted column",
			update:   models.Update{}.Set("time", "10:00"),
			fields:   models.GameFields,
			wantSQL:  `"time" = $2`,
			wantArgs: []any{"10:00"},
		},
		{
			name:     "clear owner",
			update:   models.Update{}.Set("game_owner_id", (*string)(nil)),
			fields:   models.GameFields,
			wantSQL:  "game_owner_id = $2::text",
			wantArgs: []any{nil},
		},
		{
			name:     "set owner",
			update:   models.Update{}.Set("game_owner_id", &owner),
			fields:   models.GameFields,
			wantSQL:  "game_owner_id = $2::text",
			wantArgs: []any{owner},
		},
		{
			name:     "replace list",
			update:   models.Update{}.Set("game_attendees", []string{}),
			fields:   models.GameFields,
			wantSQL:  "game_attendees = $2::jsonb",
			wantArgs: []any{models.StringList{}},
		},
		{
			name:     "append list",
			update:   models.Update{}.Push("game_attendees", "u1"),
			fields:   models.GameFields,
			wantSQL:  "game_attendees = COALESCE(game_attendees, '[]'::jsonb) || jsonb_build_array($2::text)",
			wantArgs: []any{"u1"},
		},
		{
			name:   "append set",
			update: models.Update{}.Push("games_joined", "G1"),
			fields: models.UserFields,
			wantSQL: "games_joined = CASE WHEN COALESCE(games_joined, '[]'::jsonb) @> jsonb_build_array($2::text) " +
				"THEN COALESCE(games_joined, '[]'::jsonb) ELSE COALESCE(games_joined, '[]'::jsonb) || jsonb_build_array($2::text) END",
			wantArgs: []any{"G1"},
		},
		{
			name:   "remove from set",
			update: models.Update{}.Pull("games_joined", "G1"),
			fields: models.UserFields,
			wantSQL: "games_joined = COALESCE((SELECT jsonb_agg(e) FROM jsonb_array_elements(COALESCE(games_joined, '[]'::jsonb)) AS e " +
				"WHERE e <> to_jsonb($2::text)), '[]'::jsonb)",
			wantArgs: []any{"G1"},
		},
		{
			name:     "sport flag",
			update:   models.Update{}.Set(models.SportSoccer, true),
			fields:   models.UserFields,
			wantSQL:  "sports = jsonb_set(COALESCE(sports, '{}'::jsonb), ARRAY[$2::text], to_jsonb($3::boolean))",
			wantArgs: []any{"soccer", true},
		},
		{
			name:     "replace then append folds into one assignment",
			update:   models.Update{}.Set("game_attendees", []string{"a"}).Push("game_attendees", "b"),
			fields:   models.GameFields,
			wantSQL:  "game_attendees = COALESCE($2::jsonb, '[]'::jsonb) || jsonb_build_array($3::text)",
			wantArgs: []any{models.StringList{"a"}, "b"},
		},
		{
			name:     "several columns keep order",
			update:   models.Update{}.Set("location", "x").Push("game_attendees", "u").Push("game_attendees_first_names", "n"),
			fields:   models.GameFields,
			wantSQL:  "location = $2, game_attendees = COALESCE(game_attendees, '[]'::jsonb) || jsonb_build_array($3::text), game_attendees_first_names = COALESCE(game_attendees_first_names, '[]'::jsonb) || jsonb_build_array($4::text)",
			wantArgs: []any{"x", "u", "n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := setClause(tt.update, tt.fields, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSetClause_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		update models.Update
	}{
		{"empty", models.Update{}},
		{"unknown field", models.Update{}.Set("game_id", "X")},
		{"append to scalar", models.Update{}.Push("location", "x")},
		{"wrong value type", models.Update{}.Set("game_attendees", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := setClause(tt.update, models.GameFields, 2)
			assert.Error(t, err)
		})
	}
}
