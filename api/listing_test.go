package api

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		sortable []string
		want     ListParams
	}{
		{
			name:     "Defaults",
			query:    "",
			sortable: postSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
		{
			name:     "Explicit",
			query:    "pageNumber=3&pageSize=25&sortBy=title&sortDirection=asc",
			sortable: postSortFields,
			want: ListParams{
				Page:      3,
				PageSize:  25,
				SortBy:    "title",
				Direction: SortAsc,
			},
		},
		{
			name:     "NonPositiveFallsBack",
			query:    "pageNumber=0&pageSize=-5",
			sortable: postSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
		{
			name:     "GarbageNumbersFallBack",
			query:    "pageNumber=abc&pageSize=1e3",
			sortable: postSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
		{
			name:     "SortFieldOutsideAllowList",
			query:    "sortBy=dropTable",
			sortable: postSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
		{
			name:     "BlogNameOnlySortableGlobally",
			query:    "sortBy=blogName",
			sortable: blogPostSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
		{
			name:     "DirectionCaseInsensitive",
			query:    "sortDirection=ASC",
			sortable: commentSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortAsc,
			},
		},
		{
			name:     "MalformedDirectionMeansDescending",
			query:    "sortDirection=sideways",
			sortable: commentSortFields,
			want: ListParams{
				Page:      1,
				PageSize:  10,
				SortBy:    "createdAt",
				Direction: SortDesc,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got := parseListQuery(q, tt.sortable)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseListQuery mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListParams_Offset(t *testing.T) {
	p := ListParams{Page: 3, PageSize: 10}
	if got := p.Offset(); got != 20 {
		t.Errorf("Got offset %d, want 20", got)
	}
}
