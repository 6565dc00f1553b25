package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/store"
)

// feedWhere builds the WHERE clause of the community feed.
func feedWhere(q store.PostQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	switch q.Filter {
	case models.PostFilterTrips:
		conds = append(conds, "trip_name IS NOT NULL AND trip_name <> ''")
	case models.PostFilterTips:
		conds = append(conds, "content ILIKE '%tip%'")
	case models.PostFilterQuestion:
		conds = append(conds, "position('?' in content) > 0")
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(content ILIKE $%d OR location ILIKE $%d OR user_name ILIKE $%d)", n, n, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) ListPosts(ctx context.Context, q store.PostQuery) ([]models.Post, int, error) {
	where, args := feedWhere(q)

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(1) FROM posts"+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("posts", err)
	}

	args = append(args, q.Limit, q.Offset)
	sql := fmt.Sprintf("SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		s.posts.selectList(), where, len(args)-1, len(args))
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, wrapErr("posts", err)
	}
	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Post])
	if err != nil {
		return nil, 0, wrapErr("posts", err)
	}
	if err := s.attachFeedDetails(ctx, posts, q.ViewerID); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Store) GetPost(ctx context.Context, id, viewerID string) (models.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	posts := []models.Post{p}
	if err := s.attachFeedDetails(ctx, posts, viewerID); err != nil {
		return models.Post{}, err
	}
	return posts[0], nil
}

// attachFeedDetails loads comments and the viewer's likes for a page of posts.
func (s *Store) attachFeedDetails(ctx context.Context, posts []models.Post, viewerID string) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
		posts[i].Comments = []models.Comment{}
	}

	sql := fmt.Sprintf("SELECT %s FROM post_comments WHERE post_id = ANY($1) ORDER BY created_at ASC", s.comments.selectList())
	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return wrapErr("post_comments", err)
	}
	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return wrapErr("post_comments", err)
	}
	for _, c := range comments {
		i := index[c.PostID]
		posts[i].Comments = append(posts[i].Comments, c)
	}

	if viewerID == "" {
		return nil
	}
	rows, err = s.db.Query(ctx, "SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)", viewerID, ids)
	if err != nil {
		return wrapErr("post_likes", err)
	}
	liked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return wrapErr("post_likes", err)
	}
	for _, id := range liked {
		posts[index[id]].IsLiked = true
	}
	return nil
}

func (s *Store) InsertPost(ctx context.Context, p models.Post) (models.Post, error) {
	out, err := s.posts.Insert(ctx, map[string]any{
		"id":          p.ID,
		"user_id":     p.UserID,
		"user_name":   p.UserName,
		"user_avatar": p.UserAvatar,
		"content":     p.Content,
		"trip_name":   p.TripName,
		"location":    p.Location,
		"post_date":   p.Date,
		"image_url":   p.ImageURL,
		"likes":       0,
		"created_at":  p.CreatedAt,
	})
	if err != nil {
		return models.Post{}, err
	}
	out.Comments = []models.Comment{}
	return out, nil
}

// ToggleLike likes the post for userID, or removes the like if it exists.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	var (
		likes int
		liked bool
	)
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, "INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)", postID, userID); err != nil {
				return err
			}
			liked = true
		}
		return tx.QueryRow(ctx,
			`UPDATE posts SET likes = (SELECT COUNT(1) FROM post_likes WHERE post_id = $1)
			 WHERE id = $1 RETURNING likes`, postID,
		).Scan(&likes)
	})
	if err != nil {
		return 0, false, wrapErr("post_likes", err)
	}
	return likes, liked, nil
}

func (s *Store) InsertComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	return s.comments.Insert(ctx, map[string]any{
		"id":          c.ID,
		"post_id":     c.PostID,
		"user_id":     c.UserID,
		"user_name":   c.UserName,
		"user_avatar": c.UserAvatar,
		"content":     c.Content,
		"created_at":  c.CreatedAt,
	})
}
