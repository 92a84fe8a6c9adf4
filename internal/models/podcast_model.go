package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Podcast is a catalog entry, created lazily the first time a log
// references its external source id.
type Podcast struct {
	gorm.Model
	SourceID    string `gorm:"uniqueIndex;not null" json:"sourceId"`
	Name        string `gorm:"not null" json:"name"`
	Genre       string `gorm:"type:varchar(64)" json:"genre"`
	Description string `gorm:"type:text" json:"description"`
}

// PodcastLog is a listening record (a "post" once shared). UserID is the
// authoritative ownership field for every authorization check. SharedAt is
// kept separate from ListenedAt so sharing does not destroy the original
// listen time; the feed sorts by COALESCE(shared_at, listened_at).
type PodcastLog struct {
	gorm.Model
	UserID       uint       `gorm:"not null;index" json:"userId"`
	PodcastID    uint       `gorm:"not null;index" json:"podcastId"`
	EpisodeTitle string     `json:"episodeTitle"`
	ListenedAt   time.Time  `gorm:"not null;index" json:"listenedAt"`
	DurationSec  int        `json:"durationSec"`
	Rating       float64    `json:"rating"`
	Review       string     `gorm:"type:text" json:"review"`
	Genre        string     `gorm:"type:varchar(64)" json:"genre"`
	Shared       bool       `gorm:"not null;default:false;index" json:"shared"`
	SharedAt     *time.Time `json:"sharedAt"`

	User    User    `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Podcast Podcast `gorm:"foreignKey:PodcastID;references:ID" json:"-"`
}

/** -------------------- DTOs -------------------- */

// Request
type LogListenRequest struct {
	PodcastSourceID string    `json:"podcastSourceId" binding:"required"`
	PodcastName     string    `json:"podcastName" binding:"required"`
	PodcastGenre    string    `json:"podcastGenre"`
	Description     string    `json:"description"`
	EpisodeTitle    string    `json:"episodeTitle"`
	ListenedAt      time.Time `json:"listenedAt"`
	DurationSec     int       `json:"durationSec"`
	Rating          float64   `json:"rating"`
	Review          string    `json:"review"`
	Genre           string    `json:"genre"`
}

type UpdateLogRequest struct {
	Rating *float64 `json:"rating"`
	Review *string  `json:"review"`
	Genre  *string  `json:"genre"`
}

// Response
type PodcastLogResponse struct {
	ID           uint       `json:"id"`
	PodcastID    uint       `json:"podcastId"`
	PodcastName  string     `json:"podcastName"`
	EpisodeTitle string     `json:"episodeTitle"`
	ListenedAt   time.Time  `json:"listenedAt"`
	DurationSec  int        `json:"durationSec"`
	Rating       float64    `json:"rating"`
	Review       string     `json:"review"`
	Genre        string     `json:"genre"`
	Shared       bool       `json:"shared"`
	SharedAt     *time.Time `json:"sharedAt,omitempty"`
}

func NewPodcastLogResponse(l *PodcastLog) PodcastLogResponse {
	return PodcastLogResponse{
		ID:           l.ID,
		PodcastID:    l.PodcastID,
		PodcastName:  l.Podcast.Name,
		EpisodeTitle: l.EpisodeTitle,
		ListenedAt:   l.ListenedAt,
		DurationSec:  l.DurationSec,
		Rating:       l.Rating,
		Review:       l.Review,
		Genre:        l.Genre,
		Shared:       l.Shared,
		SharedAt:     l.SharedAt,
	}
}
