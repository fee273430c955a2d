package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// 役割は順序付きで比較する。文字列比較を呼び出し側にばら撒かない。
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperuser:
		return 3
	default:
		return 0
	}
}

func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(255)" json:"name"`
	Avatar       string    `gorm:"type:text" json:"avatar"`
	State        string    `gorm:"type:varchar(80)" json:"state"`
	LGA          string    `gorm:"type:varchar(120)" json:"lga"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	TotalSpent   float64   `gorm:"not null;default:0" json:"total_spent"`
	RecentOrders int64     `gorm:"not null;default:0" json:"recent_orders"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
