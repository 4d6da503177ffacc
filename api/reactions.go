package api

import (
	"errors"
	"net/http"
	"time"
)

func (a *API) setPostLikeStatus(w http.ResponseWriter, r *http.Request) {
	a.setLikeStatus(w, r, r.PathValue("postID"), EntityPost)
}

func (a *API) setCommentLikeStatus(w http.ResponseWriter, r *http.Request) {
	a.setLikeStatus(w, r, r.PathValue("commentID"), EntityComment)
}

// setLikeStatus is the shared write path for post and comment reactions.
// For posts the cached newest-likers entry is invalidated afterwards so the
// next read repopulates it from the database.
func (a *API) setLikeStatus(w http.ResponseWriter, r *http.Request, entityID string, entityType EntityType) {
	type request struct {
		LikeStatus string `json:"likeStatus" validate:"required"`
		UserID     string `json:"userId" validate:"required"`
		UserLogin  string `json:"userLogin" validate:"required"`
	}

	var body request
	if !a.decodeBody(w, r, &body) {
		return
	}
	if !a.validateBody(w, &body) {
		return
	}

	status, ok := ParseLikeStatus(body.LikeStatus)
	if !ok {
		a.respondError(w, http.StatusBadRequest, errors.New("invalid like status"), "likeStatus must be one of Like, Dislike, None")
		return
	}

	err := a.DB.SetReaction(r.Context(), Reaction{
		EntityID:   entityID,
		EntityType: entityType,
		UserID:     body.UserID,
		UserLogin:  body.UserLogin,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		a.respondStorageError(w, err, "Could not set like status")
		return
	}

	if entityType == EntityPost {
		if err := a.Cache.InvalidateLikes(r.Context(), entityID); err != nil {
			a.Logger.Error("Could not invalidate newest likes", "error", err.Error())
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
