package model

import "time"

// お客様の声。荷物とは独立したデータ。
type Testimonial struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"date"`
}
