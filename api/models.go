package api

import (
	"strings"
	"time"
)

// A LikeStatus is a user's recorded sentiment toward a post or comment.
// None is never persisted; it is represented by the absence of a reaction.
type LikeStatus string

const (
	LikeStatusNone    LikeStatus = "None"
	LikeStatusLike    LikeStatus = "Like"
	LikeStatusDislike LikeStatus = "Dislike"
)

// ParseLikeStatus canonicalizes a status string case-insensitively. The
// second return value reports whether the input named a valid status.
func ParseLikeStatus(s string) (LikeStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like":
		return LikeStatusLike, true
	case "dislike":
		return LikeStatusDislike, true
	case "none":
		return LikeStatusNone, true
	}
	return LikeStatusNone, false
}

// An EntityType tags which kind of content a reaction refers to.
type EntityType string

const (
	EntityPost    EntityType = "Post"
	EntityComment EntityType = "Comment"
)

// A Reaction represents a user's like or dislike of a post or comment. A
// status of None removes any stored reaction.
type Reaction struct {
	EntityID   string
	EntityType EntityType
	UserID     string
	UserLogin  string
	Status     LikeStatus
	CreatedAt  time.Time
}

// LikesInfo summarizes reactions on an entity for a particular viewer.
type LikesInfo struct {
	LikesCount    int        `json:"likesCount"`
	DislikesCount int        `json:"dislikesCount"`
	MyStatus      LikeStatus `json:"myStatus"`
}

// A LikeDetails identifies one user's like and when it was added.
type LikeDetails struct {
	AddedAt time.Time `json:"addedAt"`
	UserID  string    `json:"userId"`
	Login   string    `json:"login"`
}

// ExtendedLikesInfo is the post variant of LikesInfo, carrying the newest
// likers in addition to the counters.
type ExtendedLikesInfo struct {
	LikesInfo
	NewestLikes []LikeDetails `json:"newestLikes"`
}

// A Post represents a persisted blog post.
type Post struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ShortDescription  string            `json:"shortDescription"`
	Content           string            `json:"content"`
	BlogID            string            `json:"blogId"`
	BlogName          string            `json:"blogName"`
	CreatedAt         time.Time         `json:"createdAt"`
	ExtendedLikesInfo ExtendedLikesInfo `json:"extendedLikesInfo"`
}

// CommentatorInfo identifies the author of a comment.
type CommentatorInfo struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

// A Comment represents a persisted comment on a post.
type Comment struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	PostID          string          `json:"postId"`
	CommentatorInfo CommentatorInfo `json:"commentatorInfo"`
	CreatedAt       time.Time       `json:"createdAt"`
	LikesInfo       LikesInfo       `json:"likesInfo"`
}

// A Page wraps one page of a sorted listing together with pagination
// metadata.
type Page[T any] struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

// NewPage builds the pagination envelope for one page of items. PagesCount
// is the ceiling of totalCount/pageSize. A nil items slice is normalized to
// an empty one so the JSON always carries an array.
func NewPage[T any](items []T, totalCount int, params ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	pagesCount := 0
	if totalCount > 0 {
		pagesCount = (totalCount + params.PageSize - 1) / params.PageSize
	}
	return Page[T]{
		PagesCount: pagesCount,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		Items:      items,
	}
}
