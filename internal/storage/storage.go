package storage

import (
	"errors"

	"emailbook/backend/internal/domain"
)

var (
	// ErrEmailAddressNotFound 记录未找到错误
	ErrEmailAddressNotFound = errors.New("email address not found")
)

// EmailAddressRepository 定义邮箱地址记录的数据存取操作。
type EmailAddressRepository interface {
	CreateEmailAddress(record *domain.EmailAddress) error // 创建记录并分配 ID
	GetEmailAddress(id int64) (*domain.EmailAddress, error)
	ListEmailAddresses() ([]domain.EmailAddress, error)
	UpdateEmailAddress(record *domain.EmailAddress) error
	EmailTaken(value string) (bool, error) // 唯一性查询，只查 email 列

	Health() error
	Close() error
}
