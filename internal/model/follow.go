package model

import "time"

// Follow 关注关系：user 关注 author。应用层保证 user != author。
type Follow struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_id;uniqueIndex:uk_user_author" json:"user_id"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_id;uniqueIndex:uk_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follow"
}

// FollowEvent 关注事件 outbox 表
type FollowEvent struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	UserID    uint64 `gorm:"not null"`
	AuthorID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowEvent) TableName() string { return "follow_events" }
