package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/backoffice/internal/paging"
)

// sortColumns maps the sort properties a table accepts to SQL columns.
type sortColumns map[string]string

// orderBy renders the ORDER BY clause for pr.  Properties are resolved
// through cols; an unknown property yields ErrInvalidSort.  id is always
// appended as the final tie-break so paging is stable.
func orderBy(pr paging.PageRequest, cols sortColumns) (string, error) {
	terms := make([]string, 0, len(pr.Sort)+1)
	hasID := false
	for _, o := range pr.Sort {
		col, ok := cols[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Direction == paging.Desc {
			dir = "DESC"
		}
		if o.Property == paging.DefaultSortProperty {
			hasID = true
		}
		terms = append(terms, col+" "+dir)
	}
	if !hasID {
		terms = append(terms, cols[paging.DefaultSortProperty]+" ASC")
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

// likeEscape is the ESCAPE character of every LIKE built by likeAny.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likeAny builds "(LOWER(a) LIKE ? ESCAPE '!' OR ...)" for a
// case-insensitive substring match of term on any of cols.  Wildcards in
// term match literally.
func likeAny(term string, cols ...string) (string, []any) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE ? ESCAPE '" + likeEscape + "'"
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// whereClause joins conditions with AND; no conditions means every row.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return " WHERE 1=1"
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// countRows runs SELECT COUNT(*) FROM table with the given WHERE clause.
func countRows(ctx context.Context, db *sql.DB, table, where string, args []any) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+where, args...).Scan(&n)
	return n, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullIfEmpty stores empty strings as NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// affectedOrNotFound turns "zero rows changed" into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
