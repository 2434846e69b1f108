package model

import "time"

// GalleryImage represents a photo entry in the public gallery.
// Tags and Members are stored as JSON text columns but are always
// arrays at the API boundary.
type GalleryImage struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Category    string     `json:"category" gorm:"size:100;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	ImageURL    string     `json:"imageUrl" gorm:"column:image_url;size:512;not null"`
	Tags        StringList `json:"tags" gorm:"type:text"`
	Members     StringList `json:"members" gorm:"type:text"`
	Featured    bool       `json:"featured" gorm:"default:false;index"`
	Location    string     `json:"location,omitempty" gorm:"size:255"`
	Date        time.Time  `json:"date" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CategoryCount pairs a gallery category with its image count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
