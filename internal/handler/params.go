package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/query"
)

// reserved query keys that are not column filters.
var reservedParams = map[string]bool{
	"page":        true,
	"pageSize":    true,
	"sort":        true,
	"search":      true,
	"hideArchive": true,
}

// parseListParams reads pagination, sort, search and the remaining query
// string pairs as column filters. Unknown filter keys are dropped later by
// the query schema, so nothing here needs a whitelist.
func parseListParams(c *fiber.Ctx) query.Params {
	params := query.Params{
		Filters:    map[string]string{},
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Pagination: domain.DefaultPagination(),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Pagination.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		params.Pagination.PageSize = pageSize
	}
	if hide, err := strconv.ParseBool(c.Query("hideArchive")); err == nil {
		params.HideArchive = hide
	}

	for key, value := range c.Queries() {
		if reservedParams[key] || value == "" {
			continue
		}
		params.Filters[key] = value
	}

	return params
}

func parsePagination(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		params.PageSize = pageSize
	}
	return params
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
