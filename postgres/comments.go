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

// InsertComment inserts a comment under an existing active post. If the
// post is missing or soft-deleted the comment is rejected with
// api.ErrNotFound.
func (pg *Postgres) InsertComment(ctx context.Context, c api.Comment) (api.Comment, error) {
	if !isUUID(c.PostID) {
		return api.Comment{}, api.ErrNotFound
	}
	row := &comment{
		ID:             uuid.NewString(),
		Content:        c.Content,
		PostID:         c.PostID,
		UserID:         c.CommentatorInfo.UserID,
		UserLogin:      c.CommentatorInfo.UserLogin,
		CreatedAt:      c.CreatedAt,
		DeletionStatus: deletionActive,
	}
	err := pg.bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*post)(nil)).
			Where("id = ? AND deletion_status = ?", c.PostID, deletionActive).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check post: %w", err)
		}
		if !exists {
			return api.ErrNotFound
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return api.Comment{}, err
	}
	return row.APIComment(0, 0, api.LikeStatusNone), nil
}

// GetComment returns a single active comment with live-aggregated reaction
// counts and the viewer's own status.
func (pg *Postgres) GetComment(ctx context.Context, commentID, viewerID string) (api.Comment, error) {
	if !isUUID(commentID) {
		return api.Comment{}, api.ErrNotFound
	}
	var row comment
	err := pg.bun.NewSelect().
		Model(&row).
		Where("id = ? AND deletion_status = ?", commentID, deletionActive).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return api.Comment{}, api.ErrNotFound
	}
	if err != nil {
		return api.Comment{}, fmt.Errorf("scan: %w", err)
	}

	counts, err := pg.reactionCounts(ctx, []string{commentID}, api.EntityComment)
	if err != nil {
		return api.Comment{}, err
	}
	status, err := pg.Reaction(ctx, commentID, api.EntityComment, viewerID)
	if err != nil {
		return api.Comment{}, err
	}
	c := counts[commentID]
	return row.APIComment(c.likes, c.dislikes, status), nil
}

// UpdateComment replaces the content of an active comment. The api layer
// performs the existence and ownership checks first; the row filter here
// keeps soft-deleted comments immutable regardless.
func (pg *Postgres) UpdateComment(ctx context.Context, commentID, content string) error {
	if !isUUID(commentID) {
		return api.ErrNotFound
	}
	res, err := pg.bun.NewUpdate().
		Model((*comment)(nil)).
		Set("content = ?", content).
		Where("id = ? AND deletion_status = ?", commentID, deletionActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return requireAffected(res)
}

// DeleteComment soft-deletes a comment. Its like rows are left in place;
// they are unreachable once the comment stops appearing in reads.
func (pg *Postgres) DeleteComment(ctx context.Context, commentID string) error {
	if !isUUID(commentID) {
		return api.ErrNotFound
	}
	res, err := pg.bun.NewUpdate().
		Model((*comment)(nil)).
		Set("deletion_status = ?", deletionDeleted).
		Where("id = ? AND deletion_status = ?", commentID, deletionActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return requireAffected(res)
}

// ListComments returns one page of active comments for a post, each with
// aggregated counts and the viewer's status. An unknown post reports
// api.ErrNotFound rather than an empty page.
func (pg *Postgres) ListComments(ctx context.Context, postID string, params api.ListParams, viewerID string) (api.Page[api.Comment], error) {
	if !isUUID(postID) {
		return api.Page[api.Comment]{}, api.ErrNotFound
	}
	exists, err := pg.bun.NewSelect().
		Model((*post)(nil)).
		Where("id = ? AND deletion_status = ?", postID, deletionActive).
		Exists(ctx)
	if err != nil {
		return api.Page[api.Comment]{}, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return api.Page[api.Comment]{}, api.ErrNotFound
	}

	var rows []comment
	q := pg.bun.NewSelect().
		Model(&rows).
		Where("post_id = ? AND deletion_status = ?", postID, deletionActive)
	total, err := applyOrder(q, params).
		Limit(params.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return api.Page[api.Comment]{}, fmt.Errorf("scan: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	counts, err := pg.reactionCounts(ctx, ids, api.EntityComment)
	if err != nil {
		return api.Page[api.Comment]{}, err
	}
	statuses, err := pg.ReactionsForUser(ctx, ids, api.EntityComment, viewerID)
	if err != nil {
		return api.Page[api.Comment]{}, err
	}

	items := make([]api.Comment, len(rows))
	for i, row := range rows {
		c := counts[row.ID]
		items[i] = row.APIComment(c.likes, c.dislikes, statuses[row.ID])
	}
	return api.NewPage(items, total, params), nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return api.ErrNotFound
	}
	return nil
}
