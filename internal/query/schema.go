package query

import (
	"strconv"
	"strings"
)

const (
	KindTickets    = "tickets"
	KindStructures = "structures"
	KindUsers      = "users"
)

// Field turns one filter value into a predicate clause with "?" placeholders.
// Returning an empty clause drops the filter.
type Field func(value string) (string, []interface{})

// Schema is the whitelist for one entity kind: anything not listed here is
// silently ignored when it shows up in the query string.
type Schema struct {
	Table         string
	Alias         string
	Fields        map[string]Field
	Sortable      map[string]string
	ArchiveColumn string
	Search        func(terms []string) (string, []interface{})
	DefaultOrder  string
}

func idEquals(column string) Field {
	return func(value string) (string, []interface{}) {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", nil
		}
		return column + " = ?", []interface{}{id}
	}
}

func containsFold(column string) Field {
	return func(value string) (string, []interface{}) {
		return column + " ILIKE '%' || ? || '%'", []interface{}{value}
	}
}

func equalsFold(column string) Field {
	return func(value string) (string, []interface{}) {
		return "LOWER(" + column + ") = LOWER(?)", []interface{}{value}
	}
}

func equals(column string) Field {
	return func(value string) (string, []interface{}) {
		return column + " = ?", []interface{}{value}
	}
}

func hasElement(column string) Field {
	return func(value string) (string, []interface{}) {
		return "? = ANY(" + column + ")", []interface{}{value}
	}
}

func ticketSchema() *Schema {
	return &Schema{
		Table: "tickets",
		Alias: "t",
		Fields: map[string]Field{
			"id":       idEquals("t.id"),
			"status":   equalsFold("t.status"),
			"priority": equalsFold("t.priority"),
			"category": hasElement("t.category"),
			"author": func(value string) (string, []interface{}) {
				clause := `EXISTS (SELECT 1 FROM users au WHERE au.id = t.author_id
					AND (au.firstname ILIKE '%' || ? || '%' OR au.lastname ILIKE '%' || ? || '%'))`
				return clause, []interface{}{value, value}
			},
		},
		Sortable: map[string]string{
			"id":        "t.id",
			"title":     "t.title",
			"status":    "t.status",
			"priority":  "t.priority",
			"createdAt": "t.created_at",
			"updatedAt": "t.updated_at",
		},
		ArchiveColumn: "t.archived_at",
		Search:        ticketSearch,
		DefaultOrder:  "t.id DESC",
	}
}

// ticketSearch keeps the original boolean shape: every term must hit the
// title, OR any term hits the author's first or last name. The asymmetry
// between title and author is intentional and must not be symmetrized.
func ticketSearch(terms []string) (string, []interface{}) {
	var titleConds []string
	var authorConds []string
	var args []interface{}

	for _, term := range terms {
		titleConds = append(titleConds, "t.title ILIKE '%' || ? || '%'")
		args = append(args, term)
	}
	for _, term := range terms {
		authorConds = append(authorConds,
			"au.firstname ILIKE '%' || ? || '%'",
			"au.lastname ILIKE '%' || ? || '%'")
		args = append(args, term, term)
	}

	clause := "((" + strings.Join(titleConds, " AND ") + ")" +
		" OR EXISTS (SELECT 1 FROM users au WHERE au.id = t.author_id AND (" +
		strings.Join(authorConds, " OR ") + ")))"
	return clause, args
}

func structureSchema() *Schema {
	return &Schema{
		Table: "structures",
		Alias: "s",
		Fields: map[string]Field{
			"id":      idEquals("s.id"),
			"name":    containsFold("s.name"),
			"type":    equalsFold("s.type"),
			"service": equalsFold("s.service"),
			"email":   containsFold("s.email"),
			"phone":   containsFold("s.phone"),
			"users": func(value string) (string, []interface{}) {
				clause := `EXISTS (SELECT 1 FROM structure_users su
					JOIN users mu ON mu.id = su.user_id
					WHERE su.structure_id = s.id
					AND (mu.firstname ILIKE '%' || ? || '%' OR mu.lastname ILIKE '%' || ? || '%'))`
				return clause, []interface{}{value, value}
			},
		},
		Sortable: map[string]string{
			"id":        "s.id",
			"name":      "s.name",
			"type":      "s.type",
			"createdAt": "s.created_at",
		},
		ArchiveColumn: "s.archived_at",
		Search:        structureSearch,
		DefaultOrder:  "s.id DESC",
	}
}

// structureSearch ORs every term across name, address lines, email and phone.
func structureSearch(terms []string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	for _, term := range terms {
		conds = append(conds, "s.name ILIKE '%' || ? || '%'")
		args = append(args, term)

		conds = append(conds, `EXISTS (SELECT 1 FROM addresses sa WHERE sa.id = s.address_id
			AND (sa.street_l1 ILIKE '%' || ? || '%' OR sa.city ILIKE '%' || ? || '%' OR sa.country ILIKE '%' || ? || '%'))`)
		args = append(args, term, term, term)

		conds = append(conds, "s.email ILIKE '%' || ? || '%'")
		args = append(args, term)

		conds = append(conds, "s.phone ILIKE '%' || ? || '%'")
		args = append(args, term)
	}

	return "(" + strings.Join(conds, " OR ") + ")", args
}

func userSchema() *Schema {
	return &Schema{
		Table: "users",
		Alias: "u",
		Fields: map[string]Field{
			"id":        idEquals("u.id"),
			"firstname": containsFold("u.firstname"),
			"lastname":  containsFold("u.lastname"),
			"login":     containsFold("u.login"),
			"jobType":   equals("u.job_type"),
			"email":     equals("u.email"),
			"phone":     equals("u.phone"),
			"roles": func(value string) (string, []interface{}) {
				return "EXISTS (SELECT 1 FROM unnest(u.roles) role WHERE LOWER(role) = LOWER(?))", []interface{}{value}
			},
			"address": func(value string) (string, []interface{}) {
				clause := `EXISTS (SELECT 1 FROM addresses ua WHERE ua.id = u.address_id
					AND ua.street_l1 ILIKE '%' || ? || '%')`
				return clause, []interface{}{value}
			},
			"structures": func(value string) (string, []interface{}) {
				clause := `EXISTS (SELECT 1 FROM structure_users su
					JOIN structures us ON us.id = su.structure_id
					WHERE su.user_id = u.id AND LOWER(us.name) = LOWER(?))`
				return clause, []interface{}{value}
			},
		},
		Sortable: map[string]string{
			"id":        "u.id",
			"firstname": "u.firstname",
			"lastname":  "u.lastname",
			"login":     "u.login",
			"createdAt": "u.created_at",
		},
		ArchiveColumn: "u.archived_at",
		DefaultOrder:  "u.id DESC",
	}
}
