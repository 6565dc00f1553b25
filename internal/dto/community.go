package dto

import "GLOBETROTTER_BACK-END/internal/models"

// CreatePostRequest publishes a post to the community feed
type CreatePostRequest struct {
	Content  string  `json:"content"`
	TripName *string `json:"trip_name"`
	Location *string `json:"location"`
	Date     *string `json:"date"`
	ImageURL *string `json:"image_url"`
}

// CreateCommentRequest replies to a post
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// PostsPagination describes the returned page
type PostsPagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PostsListResponse envelope
type PostsListResponse struct {
	Posts      []models.Post   `json:"posts"`
	Pagination PostsPagination `json:"pagination"`
}

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	PostID  string `json:"post_id"`
	Likes   int    `json:"likes"`
	IsLiked bool   `json:"is_liked"`
}
