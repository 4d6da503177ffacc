package api

import (
	"net/http"
	"time"
)

func (a *API) createComment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Content   string `json:"content" validate:"required,min=20,max=300"`
		UserID    string `json:"userId" validate:"required"`
		UserLogin string `json:"userLogin" validate:"required"`
	}

	postID := r.PathValue("postID")
	var body request
	if !a.decodeBody(w, r, &body) {
		return
	}
	if !a.validateBody(w, &body) {
		return
	}

	comment, err := a.DB.InsertComment(r.Context(), Comment{
		Content: body.Content,
		PostID:  postID,
		CommentatorInfo: CommentatorInfo{
			UserID:    body.UserID,
			UserLogin: body.UserLogin,
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		a.respondStorageError(w, err, "Could not create comment")
		return
	}

	a.respond(w, http.StatusCreated, comment)
}

func (a *API) getComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("commentID")
	viewerID := r.URL.Query().Get("userId")

	comment, err := a.DB.GetComment(r.Context(), commentID, viewerID)
	if err != nil {
		a.respondStorageError(w, err, "Could not get comment")
		return
	}

	a.respond(w, http.StatusOK, comment)
}

func (a *API) updateComment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Content string `json:"content" validate:"required,min=20,max=300"`
		UserID  string `json:"userId" validate:"required"`
	}

	commentID := r.PathValue("commentID")
	var body request
	if !a.decodeBody(w, r, &body) {
		return
	}
	if !a.validateBody(w, &body) {
		return
	}

	if !a.checkCommentAuthor(w, r, commentID, body.UserID) {
		return
	}

	if err := a.DB.UpdateComment(r.Context(), commentID, body.Content); err != nil {
		a.respondStorageError(w, err, "Could not update comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID string `json:"userId" validate:"required"`
	}

	commentID := r.PathValue("commentID")
	var body request
	if !a.decodeBody(w, r, &body) {
		return
	}
	if !a.validateBody(w, &body) {
		return
	}

	if !a.checkCommentAuthor(w, r, commentID, body.UserID) {
		return
	}

	if err := a.DB.DeleteComment(r.Context(), commentID); err != nil {
		a.respondStorageError(w, err, "Could not delete comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkCommentAuthor guards comment mutations. The existence check runs
// strictly before the ownership check: a missing or soft-deleted comment is
// a 404 and must never surface as a 403, and vice versa.
func (a *API) checkCommentAuthor(w http.ResponseWriter, r *http.Request, commentID, userID string) bool {
	comment, err := a.DB.GetComment(r.Context(), commentID, "")
	if err != nil {
		a.respondStorageError(w, err, "Could not get comment")
		return false
	}
	if comment.CommentatorInfo.UserID != userID {
		a.respondStorageError(w, ErrForbidden, "Comment belongs to another user")
		return false
	}
	return true
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	params := parseListQuery(r.URL.Query(), commentSortFields)
	viewerID := r.URL.Query().Get("userId")

	page, err := a.DB.ListComments(r.Context(), postID, params, viewerID)
	if err != nil {
		a.respondStorageError(w, err, "Could not list comments")
		return
	}

	a.respond(w, http.StatusOK, page)
}
