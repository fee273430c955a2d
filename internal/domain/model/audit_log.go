package model

import "time"

// 管理操作の監査ログ
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorEmail string    `gorm:"type:varchar(255);not null;index" json:"actor_email"`
	Action     string    `gorm:"type:varchar(80);not null;index" json:"action"`
	TargetID   string    `gorm:"type:varchar(64)" json:"target_id"`
	Detail     string    `gorm:"type:text" json:"detail"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
