package postgres

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/furyblack/blog-platform/api"
)

func TestPost_APIPost(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	row := post{
		ID:               "p1",
		Title:            "Title",
		ShortDescription: "Short",
		Content:          "Content",
		BlogID:           "b1",
		BlogName:         "Blog",
		LikesCount:       5,
		DislikesCount:    2,
		CreatedAt:        created,
		DeletionStatus:   deletionActive,
	}

	tests := []struct {
		name     string
		myStatus api.LikeStatus
		want     api.LikeStatus
	}{
		{name: "ViewerReaction", myStatus: api.LikeStatusLike, want: api.LikeStatusLike},
		{name: "AbsentRowMeansNone", myStatus: "", want: api.LikeStatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := row.APIPost(tt.myStatus)
			want := api.Post{
				ID:               "p1",
				Title:            "Title",
				ShortDescription: "Short",
				Content:          "Content",
				BlogID:           "b1",
				BlogName:         "Blog",
				CreatedAt:        created,
				ExtendedLikesInfo: api.ExtendedLikesInfo{
					LikesInfo: api.LikesInfo{
						LikesCount:    5,
						DislikesCount: 2,
						MyStatus:      tt.want,
					},
					NewestLikes: []api.LikeDetails{},
				},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("APIPost mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComment_APIComment(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	row := comment{
		ID:             "c1",
		Content:        "a comment long enough to pass",
		PostID:         "p1",
		UserID:         "u1",
		UserLogin:      "alice",
		CreatedAt:      created,
		DeletionStatus: deletionActive,
	}

	got := row.APIComment(3, 1, "")
	want := api.Comment{
		ID:      "c1",
		Content: "a comment long enough to pass",
		PostID:  "p1",
		CommentatorInfo: api.CommentatorInfo{
			UserID:    "u1",
			UserLogin: "alice",
		},
		CreatedAt: created,
		LikesInfo: api.LikesInfo{
			LikesCount:    3,
			DislikesCount: 1,
			MyStatus:      api.LikeStatusNone,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("APIComment mismatch (-want +got):\n%s", diff)
	}
}

func TestSortColumns(t *testing.T) {
	// Every public sort field the api layer can emit must map to a column.
	for _, field := range []string{"createdAt", "title", "shortDescription", "content", "blogName"} {
		if _, ok := sortColumns[field]; !ok {
			t.Errorf("No column mapping for sort field %q", field)
		}
	}
}
