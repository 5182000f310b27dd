package memory

import (
	"sync"
	"time"

	"emailbook/backend/internal/domain"
	"emailbook/backend/internal/storage"
)

// Store 使用内存保存邮箱地址记录，主要用于开发验证和测试。
type Store struct {
	mu      sync.RWMutex
	records map[int64]*domain.EmailAddress
	byEmail map[string]int64 // email -> id，唯一性查询索引
	nextID  int64
}

// NewStore 创建一个内存存储实例。
func NewStore() *Store {
	return &Store{
		records: make(map[int64]*domain.EmailAddress),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// CreateEmailAddress 保存新记录并分配自增 ID。
func (s *Store) CreateEmailAddress(record *domain.EmailAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record.ID = s.nextID
	record.CreatedAt = now
	record.UpdatedAt = now
	s.nextID++

	stored := *record
	s.records[record.ID] = &stored
	s.byEmail[record.Email] = record.ID
	return nil
}

// GetEmailAddress 根据 ID 获取记录。
func (s *Store) GetEmailAddress(id int64) (*domain.EmailAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, storage.ErrEmailAddressNotFound
	}

	copied := *record
	return &copied, nil
}

// ListEmailAddresses 返回全部记录快照。
func (s *Store) ListEmailAddresses() ([]domain.EmailAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.EmailAddress, 0, len(s.records))
	for id := int64(1); id < s.nextID; id++ {
		if record, ok := s.records[id]; ok {
			records = append(records, *record)
		}
	}
	return records, nil
}

// UpdateEmailAddress 覆盖已有记录。
func (s *Store) UpdateEmailAddress(record *domain.EmailAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[record.ID]
	if !ok {
		return storage.ErrEmailAddressNotFound
	}

	// 维护 email 索引
	if existing.Email != record.Email {
		delete(s.byEmail, existing.Email)
		s.byEmail[record.Email] = record.ID
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now().UTC()

	stored := *record
	s.records[record.ID] = &stored
	return nil
}

// EmailTaken 判断 email 列中是否已存在该值。
func (s *Store) EmailTaken(value string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[value]
	return ok, nil
}

// Health 内存存储始终健康。
func (s *Store) Health() error {
	return nil
}

// Close 内存存储无需释放资源。
func (s *Store) Close() error {
	return nil
}
