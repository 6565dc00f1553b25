package handlers

import (
	"net/http"
	"strings"

	"GLOBETROTTER_BACK-END/internal/dto"
	"GLOBETROTTER_BACK-END/internal/services"
	"GLOBETROTTER_BACK-END/internal/utils"
)

// CommunityHandler serves the community feed
type CommunityHandler struct {
	community *services.CommunityService
	logger    *utils.Logger
}

func NewCommunityHandler(community *services.CommunityService, logger *utils.Logger) *CommunityHandler {
	return &CommunityHandler{community: community, logger: logger}
}

// ListPosts handles GET /api/community/posts
// @Summary List community posts
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param filter query string false "all | trips | tips | questions"
// @Param search query string false "Text search"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.PostsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/community/posts [get]
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := h.community.ListPosts(r.Context(), who,
		strings.TrimSpace(q.Get("filter")),
		strings.TrimSpace(q.Get("search")),
		queryInt(r, "limit", services.DefaultPostsLimit),
		queryInt(r, "offset", 0),
	)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PostsListResponse{
		Posts: page.Posts,
		Pagination: dto.PostsPagination{
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
	})
}

// CreatePost handles POST /api/community/posts
// @Summary Publish a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreatePostRequest true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/community/posts [post]
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	post, err := h.community.CreatePost(r.Context(), who, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, post)
}

// ToggleLike handles POST /api/community/posts/{id}/like
// @Summary Like or unlike a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/community/posts/{id}/like [post]
func (h *CommunityHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	postID := pathVar(r, "id")
	likes, liked, err := h.community.ToggleLike(r.Context(), who, postID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.LikeResponse{PostID: postID, Likes: likes, IsLiked: liked})
}

// AddComment handles POST /api/community/posts/{id}/comments
// @Summary Comment on a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param payload body dto.CreateCommentRequest true "Comment payload"
// @Success 201 {object} models.Comment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/community/posts/{id}/comments [post]
func (h *CommunityHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	who, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	comment, err := h.community.AddComment(r.Context(), who, pathVar(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, comment)
}
