package postgres

import (
	"time"

	"github.com/furyblack/blog-platform/api"
)

const (
	deletionActive  = "active"
	deletionDeleted = "deleted"
)

// A post represents a blog post row. likes_count and dislikes_count are
// denormalized and maintained by the reaction transaction.
type post struct {
	ID               string    `bun:",pk,type:uuid"`
	Title            string    `bun:",notnull"`
	ShortDescription string    `bun:",notnull"`
	Content          string    `bun:",notnull"`
	BlogID           string    `bun:",notnull"`
	BlogName         string    `bun:",notnull"`
	LikesCount       int       `bun:",notnull,default:0"`
	DislikesCount    int       `bun:",notnull,default:0"`
	CreatedAt        time.Time `bun:",nullzero,default:now()"`
	DeletionStatus   string    `bun:",notnull,default:'active'"`
}

// A comment carries no reaction counters; its counts are aggregated from
// the likes table at read time.
type comment struct {
	ID             string    `bun:",pk,type:uuid"`
	Content        string    `bun:",notnull"`
	PostID         string    `bun:",notnull,type:uuid"`
	UserID         string    `bun:",notnull"`
	UserLogin      string    `bun:",notnull"`
	CreatedAt      time.Time `bun:",nullzero,default:now()"`
	DeletionStatus string    `bun:",notnull,default:'active'"`
}

// A like is one user's current reaction to one entity. The unique group
// makes "at most one row per (user, entity)" a database invariant and is
// the conflict target of the reaction upsert. A status of None is never
// stored; the row is deleted instead.
type like struct {
	ID         string    `bun:",pk,type:uuid"`
	UserID     string    `bun:",notnull,unique:likes_user_entity"`
	UserLogin  string    `bun:",notnull"`
	EntityID   string    `bun:",notnull,type:uuid,unique:likes_user_entity"`
	EntityType string    `bun:",notnull,unique:likes_user_entity"`
	Status     string    `bun:",notnull"`
	CreatedAt  time.Time `bun:",nullzero,default:now()"`
}

// APIPost maps a row onto the public post shape. myStatus is the viewer's
// reaction; an empty string means no stored reaction and maps to None.
// NewestLikes is left empty here and filled by the caller.
func (p post) APIPost(myStatus api.LikeStatus) api.Post {
	if myStatus == "" {
		myStatus = api.LikeStatusNone
	}
	return api.Post{
		ID:               p.ID,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		BlogID:           p.BlogID,
		BlogName:         p.BlogName,
		CreatedAt:        p.CreatedAt,
		ExtendedLikesInfo: api.ExtendedLikesInfo{
			LikesInfo: api.LikesInfo{
				LikesCount:    p.LikesCount,
				DislikesCount: p.DislikesCount,
				MyStatus:      myStatus,
			},
			NewestLikes: []api.LikeDetails{},
		},
	}
}

// APIComment maps a row onto the public comment shape. The counts come
// from the live aggregation over the likes table.
func (c comment) APIComment(likesCount, dislikesCount int, myStatus api.LikeStatus) api.Comment {
	if myStatus == "" {
		myStatus = api.LikeStatusNone
	}
	return api.Comment{
		ID:      c.ID,
		Content: c.Content,
		PostID:  c.PostID,
		CommentatorInfo: api.CommentatorInfo{
			UserID:    c.UserID,
			UserLogin: c.UserLogin,
		},
		CreatedAt: c.CreatedAt,
		LikesInfo: api.LikesInfo{
			LikesCount:    likesCount,
			DislikesCount: dislikesCount,
			MyStatus:      myStatus,
		},
	}
}

func (l like) APILikeDetails() api.LikeDetails {
	return api.LikeDetails{
		AddedAt: l.CreatedAt,
		UserID:  l.UserID,
		Login:   l.UserLogin,
	}
}
