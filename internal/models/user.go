package models

// User represents the user model in the database
type User struct {
	Base
	Name     string `gorm:"uniqueIndex;not null" json:"user_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"user_email"`
	Password string `gorm:"not null" json:"-"`

	Preference      *UserPreference  `gorm:"foreignKey:UserID" json:"preference,omitempty"`
	Recommendations []Recommendation `gorm:"foreignKey:UserID" json:"recommendations,omitempty"`
	ForumPosts      []ForumPost      `gorm:"foreignKey:UserID" json:"forum_posts,omitempty"`
}
