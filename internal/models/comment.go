package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"size:300;not null"`
	Created  time.Time `json:"created" gorm:"autoCreateTime"`
	AuthorID uint      `json:"author_id" gorm:"index;not null"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	PostID   *uint     `json:"post_id" gorm:"index"`
	Post     *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required,max=300"`
}
