package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/furyblack/blog-platform/api/validator"
)

// A DB provides a storage layer that persists posts, comments and
// reactions in the relational store. The store is the sole arbiter of
// consistency; implementations must not hold cross-request state in
// process memory.
type DB interface {
	InsertPost(ctx context.Context, post Post) (Post, error)
	GetPost(ctx context.Context, postID, viewerID string) (Post, error)
	ListPosts(ctx context.Context, blogID string, params ListParams, viewerID string) (Page[Post], error)

	InsertComment(ctx context.Context, comment Comment) (Comment, error)
	GetComment(ctx context.Context, commentID, viewerID string) (Comment, error)
	UpdateComment(ctx context.Context, commentID, content string) error
	DeleteComment(ctx context.Context, commentID string) error
	ListComments(ctx context.Context, postID string, params ListParams, viewerID string) (Page[Comment], error)

	SetReaction(ctx context.Context, reaction Reaction) error
	RecentLikers(ctx context.Context, entityID string, entityType EntityType, limit int) ([]LikeDetails, error)
}

// A Cache provides best-effort storage for the newest likers of a post.
// A miss is reported through the bool return, never as an error.
type Cache interface {
	NewestLikes(ctx context.Context, postID string) ([]LikeDetails, bool, error)
	SetNewestLikes(ctx context.Context, postID string, likes []LikeDetails) error
	InvalidateLikes(ctx context.Context, postID string) error
}

// API provides the REST endpoints for the application.
type API struct {
	Logger *slog.Logger
	DB     DB
	Cache  Cache
	Val    *validator.Validator

	once sync.Once
	mux  *http.ServeMux
}

// newestLikesCount is how many of the most recent likers a post view carries.
const newestLikesCount = 3

func (a *API) setupRoutes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /posts", a.listPosts)
	mux.HandleFunc("GET /posts/{postID}", a.getPost)
	mux.HandleFunc("GET /blogs/{blogID}/posts", a.listBlogPosts)
	mux.HandleFunc("POST /blogs/{blogID}/posts", a.createPost)
	mux.HandleFunc("PUT /posts/{postID}/like-status", a.setPostLikeStatus)

	mux.HandleFunc("POST /posts/{postID}/comments", a.createComment)
	mux.HandleFunc("GET /posts/{postID}/comments", a.listComments)
	mux.HandleFunc("GET /comments/{commentID}", a.getComment)
	mux.HandleFunc("PUT /comments/{commentID}", a.updateComment)
	mux.HandleFunc("DELETE /comments/{commentID}", a.deleteComment)
	mux.HandleFunc("PUT /comments/{commentID}/like-status", a.setCommentLikeStatus)

	a.mux = mux
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.once.Do(a.setupRoutes)
	a.Logger.Info("Request received", "method", r.Method, "path", r.URL.Path)
	a.mux.ServeHTTP(w, r)
}

func (a *API) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.Logger.Error("Could not encode JSON body", "error", err.Error())
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, err error, msg string) {
	type response struct {
		Error string `json:"error"`
	}
	a.Logger.Error("Error", "error", err.Error())
	a.respond(w, status, response{Error: msg})
}

// respondStorageError maps the storage sentinel errors onto 404/403 and
// treats everything else as an internal failure.
func (a *API) respondStorageError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		a.respondError(w, http.StatusNotFound, err, msg)
	case errors.Is(err, ErrForbidden):
		a.respondError(w, http.StatusForbidden, err, msg)
	default:
		a.respondError(w, http.StatusInternalServerError, err, msg)
	}
}

func (a *API) validateBody(w http.ResponseWriter, s any) bool {
	errs := a.Val.ValidateStruct(s)
	type response struct {
		Errors []validator.ValidationError `json:"errors"`
	}

	if len(errs) > 0 {
		a.respond(w, http.StatusBadRequest, &response{
			Errors: errs,
		})
		return false
	}
	return true
}

func (a *API) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.respondError(w, http.StatusBadRequest, err, "Could not decode request body")
		return false
	}
	if err := r.Body.Close(); err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not close request body")
		return false
	}
	return true
}

// newestLikes resolves the most recent likers of a post, preferring the
// cache and falling back to the database on a miss. Cache failures are
// logged and never fail the request.
func (a *API) newestLikes(ctx context.Context, postID string) ([]LikeDetails, error) {
	likes, ok, err := a.Cache.NewestLikes(ctx, postID)
	if err != nil {
		a.Logger.Error("Could not read newest likes from cache", "error", err.Error())
		ok = false
	}
	if ok {
		return likes, nil
	}

	likes, err = a.DB.RecentLikers(ctx, postID, EntityPost, newestLikesCount)
	if err != nil {
		return nil, err
	}
	if len(likes) > 0 {
		if err := a.Cache.SetNewestLikes(ctx, postID, likes); err != nil {
			a.Logger.Error("Could not cache newest likes", "error", err.Error())
		}
	}
	if likes == nil {
		likes = []LikeDetails{}
	}
	return likes, nil
}
