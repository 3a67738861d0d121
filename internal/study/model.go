package study

import "time"

// Category is a topical bucket owned by one user. Icon and Color are opaque
// presentation identifiers and are stored verbatim.
type Category struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"index;not null" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Icon        string    `gorm:"not null;default:''" json:"icon"`
	Color       string    `gorm:"not null;default:''" json:"color"`
	TotalTopics int       `gorm:"not null;default:0" json:"totalTopics"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

// Note is a Markdown note owned by one user and filed under one of that
// user's categories. Category is always resolved in API responses.
type Note struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"index;not null" json:"userId"`
	CategoryID   uint64    `gorm:"index;not null" json:"categoryId"`
	Category     Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Title        string    `gorm:"not null" json:"title"`
	Content      string    `gorm:"type:text;not null;default:''" json:"content"`
	Tags         []string  `gorm:"serializer:json;type:text" json:"tags"`
	IsBookmarked bool      `gorm:"not null;default:false" json:"isBookmarked"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"index;not null;autoUpdateTime:false" json:"updatedAt"`
}
