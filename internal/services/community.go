package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/models"
	"GLOBETROTTER_BACK-END/internal/session"
	"GLOBETROTTER_BACK-END/internal/store"
	"GLOBETROTTER_BACK-END/internal/syncpolicy"
)

const (
	DefaultPostsLimit = 20
	MaxPostsLimit     = 100
	maxPostLength     = 2000
)

var postFilters = []string{models.PostFilterAll, models.PostFilterTrips, models.PostFilterTips, models.PostFilterQuestion}

// PostsPage is one page of the community feed.
type PostsPage struct {
	Posts  []models.Post
	Total  int
	Limit  int
	Offset int
}

type CommunityService struct {
	community store.Community
	now       Clock
}

func NewCommunityService(community store.Community) *CommunityService {
	return &CommunityService{community: community, now: utcNow}
}

// ListPosts pages through the feed, newest first. limit defaults to 20 and is capped at 100.
func (s *CommunityService) ListPosts(ctx context.Context, who session.Identity, filter, search string, limit, offset int) (PostsPage, error) {
	if filter == "" {
		filter = models.PostFilterAll
	}
	if !slices.Contains(postFilters, filter) {
		return PostsPage{}, invalid("filter", "filter must be one of "+strings.Join(postFilters, ", "))
	}
	if limit <= 0 {
		limit = DefaultPostsLimit
	}
	limit = min(limit, MaxPostsLimit)
	offset = max(offset, 0)

	posts, total, err := s.community.ListPosts(ctx, store.PostQuery{
		Filter:   filter,
		Search:   strings.TrimSpace(search),
		ViewerID: who.ID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return PostsPage{}, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return PostsPage{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// CreatePost publishes a post under the caller's name.
func (s *CommunityService) CreatePost(ctx context.Context, who session.Identity, req dto.CreatePostRequest) (models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.Post{}, invalid("content", "content is required")
	}
	if len(content) > maxPostLength {
		return models.Post{}, invalid("content", fmt.Sprintf("content must be at most %d characters", maxPostLength))
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		if _, err := parseDate("date", *req.Date); err != nil {
			return models.Post{}, err
		}
	}
	p := models.Post{
		ID:         syncpolicy.NewRemoteID(),
		UserID:     who.ID,
		UserName:   who.DisplayName,
		UserAvatar: avatarOf(who),
		Content:    content,
		TripName:   optional(req.TripName),
		Location:   optional(req.Location),
		Date:       optional(req.Date),
		ImageURL:   optional(req.ImageURL),
		CreatedAt:  s.now(),
		Comments:   []models.Comment{},
	}
	created, err := s.community.InsertPost(ctx, p)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	if created.Comments == nil {
		created.Comments = []models.Comment{}
	}
	return created, nil
}

// ToggleLike likes a post or removes the caller's like.
func (s *CommunityService) ToggleLike(ctx context.Context, who session.Identity, postID string) (int, bool, error) {
	return s.community.ToggleLike(ctx, postID, who.ID)
}

// AddComment replies to a post.
func (s *CommunityService) AddComment(ctx context.Context, who session.Identity, postID string, req dto.CreateCommentRequest) (models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.Comment{}, invalid("content", "content is required")
	}
	if _, err := s.community.GetPost(ctx, postID, who.ID); err != nil {
		return models.Comment{}, err
	}
	return s.community.InsertComment(ctx, models.Comment{
		ID:         syncpolicy.NewRemoteID(),
		PostID:     postID,
		UserID:     who.ID,
		UserName:   who.DisplayName,
		UserAvatar: avatarOf(who),
		Content:    content,
		CreatedAt:  s.now(),
	})
}

func avatarOf(who session.Identity) string {
	if who.AvatarURL != nil {
		return *who.AvatarURL
	}
	return ""
}
