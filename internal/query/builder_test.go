package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickly/internal/domain"
)

func ticketParams() Params {
	return Params{
		Filters:    map[string]string{},
		Pagination: domain.DefaultPagination(),
	}
}

func TestParseSort(t *testing.T) {
	sortable := map[string]string{"name": "s.name", "createdAt": "s.created_at"}

	t.Run("empty uses default", func(t *testing.T) {
		order, err := parseSort("", sortable, "s.id DESC")
		require.NoError(t, err)
		assert.Equal(t, "s.id DESC", order)
	})

	t.Run("asc is case-insensitive", func(t *testing.T) {
		order, err := parseSort("name AsC", sortable, "s.id DESC")
		require.NoError(t, err)
		assert.Equal(t, "s.name ASC", order)
	})

	t.Run("any other direction means desc", func(t *testing.T) {
		order, err := parseSort("name descending", sortable, "s.id DESC")
		require.NoError(t, err)
		assert.Equal(t, "s.name DESC", order)

		order, err = parseSort("name foo", sortable, "s.id DESC")
		require.NoError(t, err)
		assert.Equal(t, "s.name DESC", order)
	})

	t.Run("wrong token count is rejected", func(t *testing.T) {
		_, err := parseSort("name", sortable, "s.id DESC")
		assert.ErrorIs(t, err, domain.ErrInvalidSort)

		_, err = parseSort("name asc extra", sortable, "s.id DESC")
		assert.ErrorIs(t, err, domain.ErrInvalidSort)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := parseSort("password asc", sortable, "s.id DESC")
		assert.ErrorIs(t, err, domain.ErrInvalidSort)
	})
}

func TestBuildQueries_NoFilters(t *testing.T) {
	selectSQL, countSQL, args, err := buildQueries(ticketSchema(), ticketParams())
	require.NoError(t, err)

	assert.Equal(t, "SELECT t.* FROM tickets t ORDER BY t.id DESC", selectSQL)
	assert.Equal(t, "SELECT COUNT(*) FROM tickets t", countSQL)
	assert.Empty(t, args)
}

func TestBuildQueries_FilterOrderIsDeterministic(t *testing.T) {
	p := ticketParams()
	p.Filters = map[string]string{
		"status":   "open",
		"priority": "high",
	}

	first, _, args, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)
	// Keys are sorted, so priority comes before status regardless of map order.
	assert.Equal(t,
		"SELECT t.* FROM tickets t WHERE LOWER(t.priority) = LOWER($1) AND LOWER(t.status) = LOWER($2) ORDER BY t.id DESC",
		first)
	assert.Equal(t, []interface{}{"high", "open"}, args)

	for i := 0; i < 10; i++ {
		again, _, _, err := buildQueries(ticketSchema(), p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildQueries_UnknownAndEmptyFiltersAreDropped(t *testing.T) {
	p := ticketParams()
	p.Filters = map[string]string{
		"status":    "open",
		"nonsense":  "x",
		"priority":  "",
		"dangerous": "'; DROP TABLE tickets; --",
	}

	selectSQL, _, args, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT t.* FROM tickets t WHERE LOWER(t.status) = LOWER($1) ORDER BY t.id DESC",
		selectSQL)
	assert.Equal(t, []interface{}{"open"}, args)
}

func TestBuildQueries_UnparsableIDFilterIsDropped(t *testing.T) {
	p := ticketParams()
	p.Filters = map[string]string{"id": "abc"}

	selectSQL, _, args, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)
	assert.NotContains(t, selectSQL, "WHERE")
	assert.Empty(t, args)
}

func TestBuildQueries_HideArchive(t *testing.T) {
	p := ticketParams()
	p.HideArchive = true

	selectSQL, countSQL, _, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "WHERE t.archived_at IS NULL")
	assert.Contains(t, countSQL, "WHERE t.archived_at IS NULL")
}

func TestBuildQueries_CountAndSelectSharePredicate(t *testing.T) {
	p := ticketParams()
	p.Filters = map[string]string{"status": "open"}
	p.HideArchive = true

	selectSQL, countSQL, _, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)

	wherePart := selectSQL[strings.Index(selectSQL, "WHERE"):strings.Index(selectSQL, " ORDER BY")]
	assert.Contains(t, countSQL, wherePart)
}

func TestBuildQueries_TicketSearchShape(t *testing.T) {
	p := ticketParams()
	p.Search = "printer  broken"

	selectSQL, _, args, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)

	// All terms must hit the title; any term may hit the author name instead.
	assert.Contains(t, selectSQL,
		"((t.title ILIKE '%' || $1 || '%' AND t.title ILIKE '%' || $2 || '%')")
	assert.Contains(t, selectSQL, "OR EXISTS (SELECT 1 FROM users au WHERE au.id = t.author_id AND (")
	assert.Contains(t, selectSQL, "au.firstname ILIKE '%' || $3 || '%' OR au.lastname ILIKE '%' || $4 || '%'")
	// Double space between terms must not create an empty term.
	assert.Equal(t, []interface{}{"printer", "broken", "printer", "printer", "broken", "broken"}, args)
}

func TestBuildQueries_InvalidSortFailsBeforeSQL(t *testing.T) {
	p := ticketParams()
	p.Sort = "title"

	_, _, _, err := buildQueries(ticketSchema(), p)
	assert.ErrorIs(t, err, domain.ErrInvalidSort)
}

func TestBuildQueries_CategoryFilterUsesArrayMembership(t *testing.T) {
	p := ticketParams()
	p.Filters = map[string]string{"category": "HARDWARE"}

	selectSQL, _, args, err := buildQueries(ticketSchema(), p)
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "$1 = ANY(t.category)")
	assert.Equal(t, []interface{}{"HARDWARE"}, args)
}

func TestBuildQueries_UserRolesFilter(t *testing.T) {
	p := Params{
		Filters:    map[string]string{"roles": "admin"},
		Pagination: domain.DefaultPagination(),
	}

	selectSQL, _, args, err := buildQueries(userSchema(), p)
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "EXISTS (SELECT 1 FROM unnest(u.roles) role WHERE LOWER(role) = LOWER($1))")
	assert.Equal(t, []interface{}{"admin"}, args)
}

func TestBuildQueries_StructureSearchSpansAddress(t *testing.T) {
	p := Params{
		Filters:    map[string]string{},
		Pagination: domain.DefaultPagination(),
		Search:     "paris",
	}

	selectSQL, _, args, err := buildQueries(structureSchema(), p)
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "s.name ILIKE")
	assert.Contains(t, selectSQL, "FROM addresses sa")
	// name + street/city/country + email + phone per term.
	assert.Len(t, args, 6)
}

func TestSplitSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitSearchTerms("a  b"))
	assert.Nil(t, splitSearchTerms("   "))
	assert.Nil(t, splitSearchTerms(""))
}

func TestPaginationValidate(t *testing.T) {
	p := domain.PaginationParams{Page: 0, PageSize: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = domain.PaginationParams{Page: -3, PageSize: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = domain.PaginationParams{Page: 3, PageSize: 10}
	p.Validate()
	assert.Equal(t, 20, p.Offset())
}
