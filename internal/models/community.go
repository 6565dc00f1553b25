package models

import "time"

// Post is an entry of the community feed
type Post struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	UserName   string    `json:"userName" db:"user_name"`
	UserAvatar string    `json:"userAvatar" db:"user_avatar"`
	Content    string    `json:"content" db:"content"`
	TripName   *string   `json:"tripName,omitempty" db:"trip_name"`
	Location   *string   `json:"location,omitempty" db:"location"`
	Date       *string   `json:"date,omitempty" db:"post_date"`
	ImageURL   *string   `json:"imageUrl,omitempty" db:"image_url"`
	Likes      int       `json:"likes" db:"likes"`
	IsLiked    bool      `json:"isLiked" db:"-"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Comments   []Comment `json:"comments" db:"-"`
}

// Feed filters. A post is a trip report when it names a trip, a tip when its text
// mentions "tip" and a question when it contains a question mark.
const (
	PostFilterAll      = "all"
	PostFilterTrips    = "trips"
	PostFilterTips     = "tips"
	PostFilterQuestion = "questions"
)

// Comment is a reply to a post
type Comment struct {
	ID         string    `json:"id" db:"id"`
	PostID     string    `json:"postId" db:"post_id"`
	UserID     string    `json:"userId" db:"user_id"`
	UserName   string    `json:"userName" db:"user_name"`
	UserAvatar string    `json:"userAvatar" db:"user_avatar"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

func (Post) Columns() []string {
	return []string{"id", "user_id", "user_name", "user_avatar", "content", "trip_name", "location",
		"post_date", "image_url", "likes", "created_at"}
}

func (Comment) Columns() []string {
	return []string{"id", "post_id", "user_id", "user_name", "user_avatar", "content", "created_at"}
}
