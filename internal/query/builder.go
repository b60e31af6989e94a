package query

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"tickly/internal/domain"
)

// Params is the per-request filter specification parsed from the query string.
// It is built once per request, consumed by List, then discarded.
type Params struct {
	Filters     map[string]string
	Search      string
	HideArchive bool
	Pagination  domain.PaginationParams
	Sort        string
}

// Builder translates Params into a predicate over a whitelisted column set and
// executes the paginated select plus the matching count in one read
// transaction, so total and items agree on the predicate.
type Builder struct {
	db      *sqlx.DB
	schemas map[string]*Schema
}

func NewBuilder(db *sqlx.DB) *Builder {
	return &Builder{
		db: db,
		schemas: map[string]*Schema{
			KindTickets:    ticketSchema(),
			KindStructures: structureSchema(),
			KindUsers:      userSchema(),
		},
	}
}

// List runs the filtered, sorted, paginated fetch into dest (a pointer to a
// slice of the entity's row type) and returns the total count for the same
// predicate. Unknown filter keys are ignored; a malformed sort returns
// domain.ErrInvalidSort.
func (b *Builder) List(ctx context.Context, kind string, dest interface{}, p Params) (int64, error) {
	schema, ok := b.schemas[kind]
	if !ok {
		return 0, fmt.Errorf("query: unknown entity kind %q", kind)
	}

	p.Pagination.Validate()

	selectSQL, countSQL, args, err := buildQueries(schema, p)
	if err != nil {
		return 0, err
	}

	tx, err := b.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total int64
	if err := tx.GetContext(ctx, &total, countSQL, args...); err != nil {
		return 0, err
	}

	pagedSQL := selectSQL + fmt.Sprintf(" LIMIT %d OFFSET %d", p.Pagination.PageSize, p.Pagination.Offset())
	if err := tx.SelectContext(ctx, dest, pagedSQL, args...); err != nil {
		return 0, err
	}

	return total, tx.Commit()
}

func buildQueries(schema *Schema, p Params) (selectSQL, countSQL string, args []interface{}, err error) {
	var clauses []string

	keys := make([]string, 0, len(p.Filters))
	for key := range p.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := p.Filters[key]
		if value == "" {
			continue
		}
		field, ok := schema.Fields[key]
		if !ok {
			continue
		}
		clause, clauseArgs := field(value)
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
		args = append(args, clauseArgs...)
	}

	if p.HideArchive && schema.ArchiveColumn != "" {
		clauses = append(clauses, schema.ArchiveColumn+" IS NULL")
	}

	if p.Search != "" && schema.Search != nil {
		terms := splitSearchTerms(p.Search)
		if len(terms) > 0 {
			clause, clauseArgs := schema.Search(terms)
			clauses = append(clauses, clause)
			args = append(args, clauseArgs...)
		}
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	orderBy, err := parseSort(p.Sort, schema.Sortable, schema.DefaultOrder)
	if err != nil {
		return "", "", nil, err
	}

	from := " FROM " + schema.Table + " " + schema.Alias

	selectSQL = "SELECT " + schema.Alias + ".*" + from + where + " ORDER BY " + orderBy
	countSQL = "SELECT COUNT(*)" + from + where

	selectSQL = sqlx.Rebind(sqlx.DOLLAR, selectSQL)
	countSQL = sqlx.Rebind(sqlx.DOLLAR, countSQL)
	return selectSQL, countSQL, args, nil
}

// parseSort accepts "<field> <direction>"; exactly two tokens, whitelisted
// field, and any direction other than a case-insensitive "asc" means
// descending.
func parseSort(sort string, sortable map[string]string, defaultOrder string) (string, error) {
	if sort == "" {
		return defaultOrder, nil
	}
	tokens := strings.Fields(sort)
	if len(tokens) != 2 {
		return "", domain.ErrInvalidSort
	}
	column, ok := sortable[tokens[0]]
	if !ok {
		return "", domain.ErrInvalidSort
	}
	direction := "DESC"
	if strings.EqualFold(tokens[1], "asc") {
		direction = "ASC"
	}
	return column + " " + direction, nil
}

func splitSearchTerms(search string) []string {
	var terms []string
	for _, term := range strings.Split(search, " ") {
		if strings.TrimSpace(term) != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
