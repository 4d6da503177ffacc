package api

import (
	"net/http"
	"time"
)

func (a *API) createPost(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Title            string `json:"title" validate:"required,max=30"`
		ShortDescription string `json:"shortDescription" validate:"required,max=100"`
		Content          string `json:"content" validate:"required,max=1000"`
		BlogName         string `json:"blogName" validate:"required"`
	}

	blogID := r.PathValue("blogID")
	var body request
	if !a.decodeBody(w, r, &body) {
		return
	}
	if !a.validateBody(w, &body) {
		return
	}

	post, err := a.DB.InsertPost(r.Context(), Post{
		Title:            body.Title,
		ShortDescription: body.ShortDescription,
		Content:          body.Content,
		BlogID:           blogID,
		BlogName:         body.BlogName,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not insert post")
		return
	}

	a.respond(w, http.StatusCreated, post)
}

func (a *API) getPost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	viewerID := r.URL.Query().Get("userId")

	post, err := a.DB.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		a.respondStorageError(w, err, "Could not get post")
		return
	}

	likes, err := a.newestLikes(r.Context(), post.ID)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err, "Could not get post")
		return
	}
	post.ExtendedLikesInfo.NewestLikes = likes

	a.respond(w, http.StatusOK, post)
}

func (a *API) listPosts(w http.ResponseWriter, r *http.Request) {
	a.servePostListing(w, r, "", postSortFields)
}

func (a *API) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	a.servePostListing(w, r, r.PathValue("blogID"), blogPostSortFields)
}

// servePostListing is the shared read path for the global and the per-blog
// post listings; the two differ only in filter and sortable fields.
func (a *API) servePostListing(w http.ResponseWriter, r *http.Request, blogID string, sortable []string) {
	params := parseListQuery(r.URL.Query(), sortable)
	viewerID := r.URL.Query().Get("userId")

	page, err := a.DB.ListPosts(r.Context(), blogID, params, viewerID)
	if err != nil {
		a.respondStorageError(w, err, "Could not list posts")
		return
	}

	for i := range page.Items {
		likes, err := a.newestLikes(r.Context(), page.Items[i].ID)
		if err != nil {
			a.respondError(w, http.StatusInternalServerError, err, "Could not list posts")
			return
		}
		page.Items[i].ExtendedLikesInfo.NewestLikes = likes
	}

	a.respond(w, http.StatusOK, page)
}
