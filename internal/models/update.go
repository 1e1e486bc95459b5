package models

import (
	"errors"
	"fmt"
)

// UpdateMode is the merge policy applied to a single field.
type UpdateMode int

const (
	// Replace overwrites the whole stored value.
	Replace UpdateMode = iota
	// Append adds one element to a list field, creating the list when absent.
	// On set-valued fields the element is added only if not already present.
	Append
	// Remove drops every occurrence of one element from a list field.
	Remove
)

func (m UpdateMode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("UpdateMode(%d)", int(m))
	}
}

// FieldKind describes how a column stores its value.
type FieldKind int

const (
	KindText     FieldKind = iota // string column
	KindNullable                  // nullable string column, Value is *string
	KindBool                      // boolean column
	KindList                      // JSONB array, duplicates kept
	KindSet                       // JSONB array, no duplicates
	KindFlag                      // key inside the sports JSONB object
)

// GameFields lists every game column an update may touch.
var GameFields = map[string]FieldKind{
	"type":                       KindText,
	"location":                   KindText,
	"time":                       KindText,
	"date":                       KindText,
	"game_owner_id":              KindNullable,
	"game_owner_first_name":      KindText,
	"game_attendees":             KindList,
	"game_attendees_first_names": KindList,
}

// UserFields lists every user column an update may touch. Sport names map to
// their opt-in flag.
var UserFields = map[string]FieldKind{
	"first_name":        KindText,
	"last_name":         KindText,
	"university":        KindText,
	"already_validated": KindBool,
	"games_owned":       KindSet,
	"games_joined":      KindSet,
	"orphaned_games":    KindSet,
	SportTennis:         KindFlag,
	SportFrisbee:        KindFlag,
	SportSoccer:         KindFlag,
	SportRunning:        KindFlag,
	SportBasketball:     KindFlag,
}

// ErrEmptyUpdate is returned when an update carries no directives.
var ErrEmptyUpdate = errors.New("update has no fields")

// FieldUpdate is one directive of an update command.
type FieldUpdate struct {
	Field string
	Mode  UpdateMode
	Value any
}

// Update is an ordered list of per-field directives applied as one write.
type Update []FieldUpdate

// Set appends a Replace directive.
func (u Update) Set(field string, value any) Update {
	return append(u, FieldUpdate{Field: field, Mode: Replace, Value: value})
}

// Push appends an Append directive.
func (u Update) Push(field string, value string) Update {
	return append(u, FieldUpdate{Field: field, Mode: Append, Value: value})
}

// Pull appends a Remove directive.
func (u Update) Pull(field string, value string) Update {
	return append(u, FieldUpdate{Field: field, Mode: Remove, Value: value})
}

// Validate checks every directive against the column table of the target record.
func (u Update) Validate(fields map[string]FieldKind) error {
	if len(u) == 0 {
		return ErrEmptyUpdate
	}
	for _, f := range u {
		kind, ok := fields[f.Field]
		if !ok {
			return fmt.Errorf("unknown field %q", f.Field)
		}
		if err := checkDirective(kind, f); err != nil {
			return fmt.Errorf("field %q: %w", f.Field, err)
		}
	}
	return nil
}

func checkDirective(kind FieldKind, f FieldUpdate) error {
	switch f.Mode {
	case Replace:
		switch kind {
		case KindText:
			if _, ok := f.Value.(string); !ok {
				return fmt.Errorf("replace expects a string, got %T", f.Value)
			}
		case KindNullable:
			if _, ok := f.Value.(*string); !ok {
				return fmt.Errorf("replace expects *string, got %T", f.Value)
			}
		case KindBool, KindFlag:
			if _, ok := f.Value.(bool); !ok {
				return fmt.Errorf("replace expects a bool, got %T", f.Value)
			}
		case KindList, KindSet:
			if _, ok := f.Value.([]string); !ok {
				return fmt.Errorf("replace expects []string, got %T", f.Value)
			}
		}
	case Append, Remove:
		if kind != KindList && kind != KindSet {
			return fmt.Errorf("%s is only allowed on list fields", f.Mode)
		}
		if _, ok := f.Value.(string); !ok {
			return fmt.Errorf("%s expects a string, got %T", f.Mode, f.Value)
		}
	default:
		return fmt.Errorf("unsupported mode %s", f.Mode)
	}
	return nil
}
