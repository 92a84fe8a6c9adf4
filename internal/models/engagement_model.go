package models

import "time"

/** --------------------ENTITIES-------------------- */

// Like is at most one row per (user, post); the unique index is the race
// backstop for concurrent toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment has unconstrained multiplicity; text must be non-empty.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"userId"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

// Request
type SetLikeRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Response
type LikeCountResponse struct {
	PostID uint  `json:"postId"`
	Likes  int64 `json:"likes"`
	Liked  bool  `json:"liked"`
}

type CommentResponse struct {
	ID          uint      `json:"id"`
	PostID      uint      `json:"postId"`
	UserID      uint      `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SharedPostResponse is one feed entry with denormalized poster identity
// and engagement aggregates.
type SharedPostResponse struct {
	PodcastLogResponse
	Poster   UserResponse      `json:"poster"`
	Likes    int64             `json:"likes"`
	Liked    bool              `json:"liked"`
	Comments []CommentResponse `json:"comments"`
}
