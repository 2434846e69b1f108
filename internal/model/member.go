package model

import "time"

// Member represents a club member profile shown on the public roster.
type Member struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:255;not null;index"`
	Roadname  string     `json:"roadname,omitempty" gorm:"size:255"`
	Rank      string     `json:"rank" gorm:"size:100;not null;index"`
	Chapter   string     `json:"chapter" gorm:"size:100;not null;index"`
	Bio       string     `json:"bio" gorm:"type:text;not null"`
	Image     string     `json:"image,omitempty" gorm:"size:512"`
	JoinDate  *time.Time `json:"joinDate,omitempty"`
	IsActive  bool       `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// RankCount pairs a rank with the number of members holding it.
type RankCount struct {
	Rank  string `json:"rank"`
	Count int64  `json:"count"`
}

// ChapterCount pairs a chapter with its member count.
type ChapterCount struct {
	Chapter string `json:"chapter"`
	Count   int64  `json:"count"`
}

// MemberStats aggregates roster numbers for the admin dashboard.
type MemberStats struct {
	TotalMembers     int64          `json:"totalMembers"`
	MembersByChapter []ChapterCount `json:"membersByChapter"`
	MembersByRank    []RankCount    `json:"membersByRank"`
}
