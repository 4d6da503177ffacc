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

const (
	statusLike    = "Like"
	statusDislike = "Dislike"
)

// SetReaction records, changes or removes a user's reaction to a post or
// comment in a single transaction. The write is an upsert on the
// (user_id, entity_id, entity_type) uniqueness constraint, so concurrent
// calls for the same pair can never produce two rows. For posts the
// denormalized counters are adjusted in the same transaction with one
// relative UPDATE.
func (pg *Postgres) SetReaction(ctx context.Context, r api.Reaction) error {
	if !isUUID(r.EntityID) {
		return api.ErrNotFound
	}
	return pg.bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Locks the entity row, serializing concurrent reactions to the
		// same entity so the previous-status read below stays valid for
		// the counter math.
		if err := lockEntity(ctx, tx, r.EntityID, r.EntityType); err != nil {
			return err
		}

		var prev like
		err := tx.NewSelect().
			Model(&prev).
			Where("user_id = ? AND entity_id = ? AND entity_type = ?", r.UserID, r.EntityID, string(r.EntityType)).
			Scan(ctx)
		old := ""
		switch {
		case err == nil:
			old = prev.Status
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("select reaction: %w", err)
		}

		switch {
		case r.Status == api.LikeStatusNone:
			if old == "" {
				return nil
			}
			_, err := tx.NewDelete().
				Model((*like)(nil)).
				Where("user_id = ? AND entity_id = ? AND entity_type = ?", r.UserID, r.EntityID, string(r.EntityType)).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete reaction: %w", err)
			}
		case old == string(r.Status):
			// Redundant write, nothing to change.
			return nil
		default:
			row := &like{
				ID:         uuid.NewString(),
				UserID:     r.UserID,
				UserLogin:  r.UserLogin,
				EntityID:   r.EntityID,
				EntityType: string(r.EntityType),
				Status:     string(r.Status),
				CreatedAt:  r.CreatedAt,
			}
			_, err := tx.NewInsert().
				Model(row).
				On("CONFLICT (user_id, entity_id, entity_type) DO UPDATE").
				Set("status = EXCLUDED.status").
				Set("created_at = EXCLUDED.created_at").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("upsert reaction: %w", err)
			}
		}

		if r.EntityType != api.EntityPost {
			return nil
		}
		likesDelta, dislikesDelta := counterDeltas(old, string(r.Status))
		if likesDelta == 0 && dislikesDelta == 0 {
			return nil
		}
		_, err = tx.NewUpdate().
			Model((*post)(nil)).
			Set("likes_count = GREATEST(likes_count + ?, 0)", likesDelta).
			Set("dislikes_count = GREATEST(dislikes_count + ?, 0)", dislikesDelta).
			Where("id = ?", r.EntityID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update counters: %w", err)
		}
		return nil
	})
}

// lockEntity verifies the reaction target exists and is active, taking a
// row lock on it for the remainder of the transaction.
func lockEntity(ctx context.Context, tx bun.Tx, entityID string, entityType api.EntityType) error {
	var q *bun.SelectQuery
	switch entityType {
	case api.EntityPost:
		q = tx.NewSelect().Model((*post)(nil))
	case api.EntityComment:
		q = tx.NewSelect().Model((*comment)(nil))
	default:
		return fmt.Errorf("unknown entity type %q", entityType)
	}
	var id string
	err := q.Column("id").
		Where("id = ? AND deletion_status = ?", entityID, deletionActive).
		For("UPDATE").
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return api.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock entity: %w", err)
	}
	return nil
}

// counterDeltas returns the adjustments the post counters need for a
// reaction transition old -> new. The empty string stands for no stored
// reaction. old == new yields no adjustment, and a transition touching
// None on either side adjusts exactly one counter.
func counterDeltas(old, new string) (likes, dislikes int) {
	if old == new {
		return 0, 0
	}
	switch old {
	case statusLike:
		likes--
	case statusDislike:
		dislikes--
	}
	switch new {
	case statusLike:
		likes++
	case statusDislike:
		dislikes++
	}
	return likes, dislikes
}

// Reaction returns the viewer's stored status for one entity. An empty
// viewerID or a missing row reports None.
func (pg *Postgres) Reaction(ctx context.Context, entityID string, entityType api.EntityType, userID string) (api.LikeStatus, error) {
	if userID == "" {
		return api.LikeStatusNone, nil
	}
	var row like
	err := pg.bun.NewSelect().
		Model(&row).
		Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, entityID, string(entityType)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return api.LikeStatusNone, nil
	}
	if err != nil {
		return api.LikeStatusNone, fmt.Errorf("select reaction: %w", err)
	}
	return api.LikeStatus(row.Status), nil
}

// ReactionsForUser batch-resolves the viewer's status for a page of
// entities. Entities without a row are simply absent from the map, which
// the converters read as None.
func (pg *Postgres) ReactionsForUser(ctx context.Context, entityIDs []string, entityType api.EntityType, userID string) (map[string]api.LikeStatus, error) {
	out := make(map[string]api.LikeStatus)
	if userID == "" || len(entityIDs) == 0 {
		return out, nil
	}
	var rows []like
	err := pg.bun.NewSelect().
		Model(&rows).
		Where("user_id = ? AND entity_type = ?", userID, string(entityType)).
		Where("entity_id IN (?)", bun.In(entityIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select reactions: %w", err)
	}
	for _, row := range rows {
		out[row.EntityID] = api.LikeStatus(row.Status)
	}
	return out, nil
}

// RecentLikers returns the newest likes of an entity, most recent first
// with an id tie-break.
func (pg *Postgres) RecentLikers(ctx context.Context, entityID string, entityType api.EntityType, limit int) ([]api.LikeDetails, error) {
	var rows []like
	err := pg.bun.NewSelect().
		Model(&rows).
		Where("entity_id = ? AND entity_type = ? AND status = ?", entityID, string(entityType), statusLike).
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select likers: %w", err)
	}
	out := make([]api.LikeDetails, len(rows))
	for i, row := range rows {
		out[i] = row.APILikeDetails()
	}
	return out, nil
}

type entityCounts struct {
	likes    int
	dislikes int
}

// reactionCounts aggregates like/dislike counts for a page of entities in
// one grouped query. Entities with no reactions are absent from the map.
func (pg *Postgres) reactionCounts(ctx context.Context, entityIDs []string, entityType api.EntityType) (map[string]entityCounts, error) {
	out := make(map[string]entityCounts)
	if len(entityIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		EntityID string `bun:"entity_id"`
		Likes    int    `bun:"likes"`
		Dislikes int    `bun:"dislikes"`
	}
	err := pg.bun.NewSelect().
		TableExpr("likes").
		ColumnExpr("entity_id").
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS likes", statusLike).
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS dislikes", statusDislike).
		Where("entity_type = ?", string(entityType)).
		Where("entity_id IN (?)", bun.In(entityIDs)).
		GroupExpr("entity_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate reactions: %w", err)
	}
	for _, row := range rows {
		out[row.EntityID] = entityCounts{likes: row.Likes, dislikes: row.Dislikes}
	}
	return out, nil
}
