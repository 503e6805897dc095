package model

import "time"

type AdminModel struct {
	AdminID        uint      `gorm:"column:admin_id;primaryKey;autoIncrement" json:"id"`
	AdminUsername  string    `gorm:"column:admin_username;type:varchar(80);not null;uniqueIndex:uq_admins_username" json:"username"`
	AdminPassword  string    `gorm:"column:admin_password;type:varchar(120);not null" json:"-"`
	AdminCreatedAt time.Time `gorm:"column:admin_created_at;type:timestamptz;not null;autoCreateTime" json:"created_at"`
}

func (AdminModel) TableName() string {
	return "admins"
}
