package repositories

import (
	"fmt"
	"strings"

	"github.com/sbilibin2017/sport-together/internal/models"
)

// setClause turns an update command into a SET clause. Placeholders start at
// $firstArg. Directives touching the same column are folded into one
// expression in order, so a Replace followed by an Append on the same list
// yields the replaced list plus the appended element.
func setClause(u models.Update, fields map[string]models.FieldKind, firstArg int) (string, []any, error) {
	if err := u.Validate(fields); err != nil {
		return "", nil, err
	}

	var (
		order []string
		exprs = map[string]string{}
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", firstArg+len(args)-1)
	}

	for _, f := range u {
		kind := fields[f.Field]
		column := f.Field
		if kind == models.KindFlag {
			column = "sports"
		}
		col := quoteIdent(column)

		expr, seen := exprs[column]
		if !seen {
			order = append(order, column)
			expr = col
		}

		switch f.Mode {
		case models.Replace:
			switch kind {
			case models.KindText, models.KindBool:
				expr = next(f.Value)
			case models.KindNullable:
				var v any
				if p := f.Value.(*string); p != nil {
					v = *p
				}
				expr = next(v) + "::text"
			case models.KindList, models.KindSet:
				expr = next(models.StringList(f.Value.([]string))) + "::jsonb"
			case models.KindFlag:
				key := next(f.Field)
				val := next(f.Value)
				expr = fmt.Sprintf("jsonb_set(COALESCE(%s, '{}'::jsonb), ARRAY[%s::text], to_jsonb(%s::boolean))", expr, key, val)
			}
		case models.Append:
			base := fmt.Sprintf("COALESCE(%s, '[]'::jsonb)", expr)
			elem := fmt.Sprintf("jsonb_build_array(%s::text)", next(f.Value))
			if kind == models.KindSet {
				expr = fmt.Sprintf("CASE WHEN %s @> %s THEN %s ELSE %s || %s END", base, elem, base, base, elem)
			} else {
				expr = fmt.Sprintf("%s || %s", base, elem)
			}
		case models.Remove:
			expr = fmt.Sprintf(
				"COALESCE((SELECT jsonb_agg(e) FROM jsonb_array_elements(COALESCE(%s, '[]'::jsonb)) AS e WHERE e <> to_jsonb(%s::text)), '[]'::jsonb)",
				expr, next(f.Value),
			)
		}
		exprs[column] = expr
	}

	parts := make([]string, 0, len(order))
	for _, column := range order {
		parts = append(parts, fmt.Sprintf("%s = %s", quoteIdent(column), exprs[column]))
	}
	return strings.Join(parts, ", "), args, nil
}

// quoteIdent quotes column names that collide with SQL type names.
func quoteIdent(column string) string {
	switch column {
	case "type", "time", "date":
		return `"` + column + `"`
	}
	return column
}
