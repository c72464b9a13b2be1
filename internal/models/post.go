package models

import "time"

// Post is a blog entry. Group and Image are optional.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	AuthorID uint      `json:"author_id" gorm:"index;not null"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	GroupID  *uint     `json:"group_id,omitempty" gorm:"index"`
	Group    *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE;"`
	Image    string    `json:"image,omitempty" gorm:"size:255"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text    string `json:"text" form:"text" validate:"required"`
	GroupID *uint  `json:"group_id,omitempty" form:"group_id"`
}

// UpdatePostRequest replaces the editable fields of a post. A nil GroupID
// detaches the post from its group. The current image is kept unless a new
// one is uploaded or ClearImage is set.
type UpdatePostRequest struct {
	Text       string `json:"text" form:"text" validate:"required"`
	GroupID    *uint  `json:"group_id,omitempty" form:"group_id"`
	ClearImage bool   `json:"clear_image,omitempty" form:"clear_image"`
}
