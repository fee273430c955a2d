package model

import "time"

// 全ユーザー向けのお知らせ。最新の1件だけを配信する（PK固定）。
const AdminMessageSingletonID int64 = 1

type AdminMessage struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
