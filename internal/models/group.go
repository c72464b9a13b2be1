package models

// Group is a topic posts can be filed under, addressed by its slug.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Rules       string `json:"rules" gorm:"type:text"`
}

// CreateGroupRequest defines the input for creating a group
type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=50,slug"`
	Description string `json:"description" validate:"required"`
	Rules       string `json:"rules"`
}
