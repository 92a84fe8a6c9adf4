package models

import "time"

/** --------------------ENTITIES-------------------- */

// Conversation is the unique thread for one unordered pair of users,
// stored canonically with User1ID < User2ID.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user1Id"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Message is append-only except for the read flag, which flips false->true
// when the recipient views the conversation. Ordering inside a conversation
// is (created_at, id) ascending.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversationId"`
	SenderID       uint      `gorm:"not null" json:"senderId"`
	RecipientID    uint      `gorm:"not null;index:idx_message_unread" json:"recipientId"`
	Text           string    `gorm:"type:text" json:"text"`
	SharedLogID    *uint     `json:"sharedLogId,omitempty"`
	Read           bool      `gorm:"not null;default:false;index:idx_message_unread" json:"read"`
	CreatedAt      time.Time `json:"createdAt"`

	Sender    User        `gorm:"foreignKey:SenderID;references:ID" json:"-"`
	SharedLog *PodcastLog `gorm:"foreignKey:SharedLogID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

// Request
type PostMessageRequest struct {
	Text string `json:"text"`
}

type ShareToConversationRequest struct {
	LogID       uint `json:"logId" binding:"required"`
	RecipientID uint `json:"recipientId" binding:"required"`
}

// Response
type MessageResponse struct {
	ID                uint                `json:"id"`
	ConversationID    uint                `json:"conversationId"`
	SenderID          uint                `json:"senderId"`
	SenderUsername    string              `json:"senderUsername"`
	SenderDisplayName string              `json:"senderDisplayName"`
	RecipientID       uint                `json:"recipientId"`
	Text              string              `json:"text,omitempty"`
	SharedLog         *PodcastLogResponse `json:"sharedLog,omitempty"`
	Read              bool                `json:"read"`
	SentAt            time.Time           `json:"sentAt"`
}

type ConversationResponse struct {
	ID          uint             `json:"id"`
	Participant UserResponse     `json:"participant"`
	LastMessage *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount int64            `json:"unreadCount"`
}
