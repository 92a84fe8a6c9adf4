package models

import "time"

/** --------------------ENTITIES-------------------- */

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is the single row per ordered (from, to) pair. Status is
// mutated in place; a rejected request flips back to pending on resend.
// No soft delete: unfriend removes the row so a later resend can reuse
// the unique index slot.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	FromUserID uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"fromUserId"`
	ToUserID   uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"toUserId"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`

	FromUser User `gorm:"foreignKey:FromUserID;references:ID" json:"-"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID" json:"-"`
}

// Friendship is one directed edge. A mutual friendship is two rows,
// written atomically when a request is accepted.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"userId"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"friendId"`
	CreatedAt time.Time `json:"createdAt"`

	Friend User `gorm:"foreignKey:FriendID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

// Request
type SendFriendRequestInput struct {
	Username string `json:"username" binding:"required"`
}

type RespondFriendRequestInput struct {
	Action string `json:"action" binding:"required"`
}

// Response
type FriendRequestResponse struct {
	ID       uint                `json:"id"`
	FromUser UserResponse        `json:"fromUser"`
	ToUser   UserResponse        `json:"toUser"`
	Status   FriendRequestStatus `json:"status"`
	SentAt   time.Time           `json:"sentAt"`
}

type FriendResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	FriendsAt   time.Time `json:"friendsAt"`
}
