package service

import (
	"emailbook/backend/internal/config"
	"emailbook/backend/internal/domain"
	"emailbook/backend/internal/storage"
)

// EmailAddressService 封装邮箱地址记录的业务操作。
//
// 每次写入（创建或更新）都先对被触及的字段执行验证门，
// 全部通过后才提交存储；任一字段失败则整个写入中止，不产生部分更新。
type EmailAddressService struct {
	repo         storage.EmailAddressRepository
	extraBlocked []string
}

// NewEmailAddressService 创建邮箱地址业务服务。
func NewEmailAddressService(repo storage.EmailAddressRepository, cfg *config.Config) *EmailAddressService {
	var extraBlocked []string
	if cfg != nil {
		extraBlocked = cfg.Validation.ExtraBlockedDomains
	}

	return &EmailAddressService{
		repo:         repo,
		extraBlocked: extraBlocked,
	}
}

// CreateEmailAddressInput 定义创建记录所需的输入。
//
// 字段是解码后的 JSON 值（而非 string），这样非字符串输入
// 能走到验证门的类型检查，而不是在绑定阶段被丢弃。
type CreateEmailAddressInput struct {
	Email          any
	BackupEmail    any
	BackupEmailSet bool // backup_email 键是否出现在请求中
}

// Create 创建新的邮箱地址记录。
//
// email 始终验证；backup_email 仅在调用方提供时验证，
// 使用与 email 完全相同的规则集（含针对 email 列的唯一性检查）。
func (s *EmailAddressService) Create(input CreateEmailAddressInput) (*domain.EmailAddress, error) {
	if err := domain.ValidateEmailValue(input.Email, s.repo, s.extraBlocked); err != nil {
		return nil, err
	}

	record := &domain.EmailAddress{
		Email: input.Email.(string),
	}

	if input.BackupEmailSet {
		if err := domain.ValidateEmailValue(input.BackupEmail, s.repo, s.extraBlocked); err != nil {
			return nil, err
		}
		record.BackupEmail = input.BackupEmail.(string)
	}

	if err := s.repo.CreateEmailAddress(record); err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateEmailAddressInput 定义更新记录所需的输入。
// 只有 Set 标记为 true 的字段会被验证和写入。
type UpdateEmailAddressInput struct {
	Email          any
	EmailSet       bool
	BackupEmail    any
	BackupEmailSet bool
}

// Update 更新已有记录的字段。
//
// 先对所有改动字段逐一执行验证门，首个失败即中止，
// 存储不会收到任何写入；全部通过后一次性提交。
func (s *EmailAddressService) Update(id int64, input UpdateEmailAddressInput) (*domain.EmailAddress, error) {
	record, err := s.repo.GetEmailAddress(id)
	if err != nil {
		return nil, err
	}

	if input.EmailSet {
		if err := domain.ValidateEmailValue(input.Email, s.repo, s.extraBlocked); err != nil {
			return nil, err
		}
		record.Email = input.Email.(string)
	}

	if input.BackupEmailSet {
		if err := domain.ValidateEmailValue(input.BackupEmail, s.repo, s.extraBlocked); err != nil {
			return nil, err
		}
		record.BackupEmail = input.BackupEmail.(string)
	}

	if err := s.repo.UpdateEmailAddress(record); err != nil {
		return nil, err
	}

	return record, nil
}

// Get 根据 ID 获取记录。
func (s *EmailAddressService) Get(id int64) (*domain.EmailAddress, error) {
	return s.repo.GetEmailAddress(id)
}

// List 返回全部记录。
func (s *EmailAddressService) List() ([]domain.EmailAddress, error) {
	return s.repo.ListEmailAddresses()
}
