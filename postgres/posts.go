package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/furyblack/blog-platform/api"
)

// sortColumns maps the public sort field names onto table columns. The api
// layer has already validated the field against an allow-list; the map is
// the only way a name can reach the ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt":        "created_at",
	"title":            "title",
	"shortDescription": "short_description",
	"content":          "content",
	"blogName":         "blog_name",
}

// applyOrder translates validated sort parameters into an ORDER BY with an
// id tie-break, so rows sharing a sort-key value page deterministically.
func applyOrder(q *bun.SelectQuery, params api.ListParams) *bun.SelectQuery {
	col, ok := sortColumns[params.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := bun.Safe(params.Direction)
	return q.OrderExpr("? ?, id ?", bun.Ident(col), dir, dir)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// InsertPost inserts a post into the database with a fresh id and zeroed
// reaction counters.
func (pg *Postgres) InsertPost(ctx context.Context, p api.Post) (api.Post, error) {
	row := &post{
		ID:               uuid.NewString(),
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		BlogID:           p.BlogID,
		BlogName:         p.BlogName,
		CreatedAt:        p.CreatedAt,
		DeletionStatus:   deletionActive,
	}
	if _, err := pg.bun.NewInsert().Model(row).Exec(ctx); err != nil {
		return api.Post{}, fmt.Errorf("insert: %w", err)
	}
	return row.APIPost(api.LikeStatusNone), nil
}

// GetPost returns a single active post annotated with the viewer's
// reaction. Soft-deleted and unknown posts report api.ErrNotFound.
func (pg *Postgres) GetPost(ctx context.Context, postID, viewerID string) (api.Post, error) {
	if !isUUID(postID) {
		return api.Post{}, api.ErrNotFound
	}
	var row post
	err := pg.bun.NewSelect().
		Model(&row).
		Where("id = ? AND deletion_status = ?", postID, deletionActive).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return api.Post{}, api.ErrNotFound
	}
	if err != nil {
		return api.Post{}, fmt.Errorf("scan: %w", err)
	}

	status, err := pg.Reaction(ctx, postID, api.EntityPost, viewerID)
	if err != nil {
		return api.Post{}, err
	}
	return row.APIPost(status), nil
}

// ListPosts returns one page of active posts, globally or filtered by
// blog, annotated with the viewer's reactions.
func (pg *Postgres) ListPosts(ctx context.Context, blogID string, params api.ListParams, viewerID string) (api.Page[api.Post], error) {
	var rows []post
	q := pg.bun.NewSelect().
		Model(&rows).
		Where("deletion_status = ?", deletionActive)
	if blogID != "" {
		q = q.Where("blog_id = ?", blogID)
	}
	total, err := applyOrder(q, params).
		Limit(params.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return api.Page[api.Post]{}, fmt.Errorf("scan: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	statuses, err := pg.ReactionsForUser(ctx, ids, api.EntityPost, viewerID)
	if err != nil {
		return api.Page[api.Post]{}, err
	}

	items := make([]api.Post, len(rows))
	for i, row := range rows {
		items[i] = row.APIPost(statuses[row.ID])
	}
	return api.NewPage(items, total, params), nil
}
