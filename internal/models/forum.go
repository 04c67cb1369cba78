package models

// ForumPost is a top-level discussion thread.
type ForumPost struct {
	Base
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"not null" json:"content"`

	User    User         `gorm:"foreignKey:UserID" json:"-"`
	Replies []ForumReply `gorm:"foreignKey:ForumPostID" json:"replies,omitempty"`
}

// ForumReply is a reply within a discussion thread.
type ForumReply struct {
	Base
	ForumPostID string `gorm:"type:uuid;not null;index" json:"forum_id"`
	UserID      string `gorm:"type:uuid;not null" json:"user_id"`
	Content     string `gorm:"not null" json:"content"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
