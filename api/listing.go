package api

import (
	"net/url"
	"strconv"
	"strings"
)

// SortDirection is a validated ORDER BY direction. Only the two constant
// values ever leave this package, so storage can splice it into SQL.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	defaultSortBy   = "createdAt"
)

// ListParams carries normalized pagination and sorting parameters. Values
// produced by parseListQuery are always safe to use as-is: page and
// pageSize are positive and SortBy is a member of an allow-list.
type ListParams struct {
	Page      int
	PageSize  int
	SortBy    string
	Direction SortDirection
}

// Offset returns the row offset of the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Sortable fields per listing. A sortBy value outside the listing's
// allow-list silently falls back to createdAt rather than erroring, so the
// field name can never be abused to inject SQL.
var (
	commentSortFields  = []string{"createdAt"}
	blogPostSortFields = []string{"createdAt", "title", "shortDescription", "content"}
	postSortFields     = append(blogPostSortFields, "blogName")
)

// parseListQuery extracts pagination and sorting parameters from a request
// query. Missing or non-positive page/pageSize fall back to the defaults
// (1 and 10). sortDirection maps "asc" case-insensitively to ascending;
// any other value, including garbage, means descending.
func parseListQuery(q url.Values, sortable []string) ListParams {
	p := ListParams{
		Page:      defaultPage,
		PageSize:  defaultPageSize,
		SortBy:    defaultSortBy,
		Direction: SortDesc,
	}
	if n, err := strconv.Atoi(q.Get("pageNumber")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && n > 0 {
		p.PageSize = n
	}
	if sortBy := q.Get("sortBy"); sortBy != "" {
		for _, f := range sortable {
			if f == sortBy {
				p.SortBy = sortBy
				break
			}
		}
	}
	if strings.EqualFold(q.Get("sortDirection"), "asc") {
		p.Direction = SortAsc
	}
	return p
}
