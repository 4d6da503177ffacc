package api

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLikeStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   LikeStatus
		wantOK bool
	}{
		{"Like", LikeStatusLike, true},
		{"like", LikeStatusLike, true},
		{"LIKE", LikeStatusLike, true},
		{"Dislike", LikeStatusDislike, true},
		{"dIsLiKe", LikeStatusDislike, true},
		{"None", LikeStatusNone, true},
		{"none", LikeStatusNone, true},
		{" like ", LikeStatusLike, true},
		{"", LikeStatusNone, false},
		{"love", LikeStatusNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseLikeStatus(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLikeStatus(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewPage(t *testing.T) {
	params := ListParams{Page: 2, PageSize: 10}

	tests := []struct {
		name       string
		items      []string
		totalCount int
		want       Page[string]
	}{
		{
			name:       "ExactMultiple",
			items:      []string{"a", "b"},
			totalCount: 20,
			want: Page[string]{
				PagesCount: 2,
				Page:       2,
				PageSize:   10,
				TotalCount: 20,
				Items:      []string{"a", "b"},
			},
		},
		{
			name:       "PartialLastPage",
			items:      []string{"a"},
			totalCount: 21,
			want: Page[string]{
				PagesCount: 3,
				Page:       2,
				PageSize:   10,
				TotalCount: 21,
				Items:      []string{"a"},
			},
		},
		{
			name:       "EmptyKeepsItemsNonNil",
			items:      nil,
			totalCount: 0,
			want: Page[string]{
				PagesCount: 0,
				Page:       2,
				PageSize:   10,
				TotalCount: 0,
				Items:      []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.items, tt.totalCount, params)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewPage mismatch (-want +got):\n%s", diff)
			}
			if got.Items == nil {
				t.Error("Items must never be nil")
			}
		})
	}
}
