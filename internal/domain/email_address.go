package domain

import "time"

// EmailAddress 邮箱地址记录实体
//
// ID 由存储层在创建时分配，之后不可变更。
// Email 和 BackupEmail 的每次写入都必须先通过验证门（见 validation.go）。
type EmailAddress struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string    `json:"email" gorm:"index"`
	BackupEmail string    `json:"backupEmail" gorm:"column:backup_email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName 指定 GORM 迁移使用的表名
func (EmailAddress) TableName() string {
	return "email_addresses"
}
