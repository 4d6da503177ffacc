package redis

import (
	"time"

	"github.com/furyblack/blog-platform/api"
)

// A likeEntry is one cached like, stored as a Redis hash.
type likeEntry struct {
	UserID  string    `redis:"user_id"`
	Login   string    `redis:"login"`
	AddedAt time.Time `redis:"added_at"`
}

func (l likeEntry) APILikeDetails() api.LikeDetails {
	return api.LikeDetails{
		AddedAt: l.AddedAt,
		UserID:  l.UserID,
		Login:   l.Login,
	}
}
