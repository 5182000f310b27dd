package sql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"emailbook/backend/internal/domain"
	"emailbook/backend/internal/storage"
)

// ========== EmailAddress Repository ==========

// CreateEmailAddress 创建新记录，由数据库分配自增 ID
func (s *Store) CreateEmailAddress(record *domain.EmailAddress) error {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if s.driverName == "postgres" {
		query := fmt.Sprintf(`
			INSERT INTO email_addresses (email, backup_email, created_at, updated_at)
			VALUES (%s, %s, %s, %s)
			RETURNING id
		`, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4))
		return s.db.QueryRow(query,
			record.Email,
			record.BackupEmail,
			record.CreatedAt,
			record.UpdatedAt,
		).Scan(&record.ID)
	}

	query := `
		INSERT INTO email_addresses (email, backup_email, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.Exec(query,
		record.Email,
		record.BackupEmail,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = id
	return nil
}

// GetEmailAddress 根据 ID 获取记录
func (s *Store) GetEmailAddress(id int64) (*domain.EmailAddress, error) {
	query := fmt.Sprintf(`
		SELECT id, email, backup_email, created_at, updated_at
		FROM email_addresses
		WHERE id = %s
	`, s.placeholder(1))

	var record domain.EmailAddress
	err := s.db.QueryRow(query, id).Scan(
		&record.ID,
		&record.Email,
		&record.BackupEmail,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrEmailAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// ListEmailAddresses 返回全部记录
func (s *Store) ListEmailAddresses() ([]domain.EmailAddress, error) {
	query := `
		SELECT id, email, backup_email, created_at, updated_at
		FROM email_addresses
		ORDER BY id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.EmailAddress, 0)
	for rows.Next() {
		var record domain.EmailAddress
		if err := rows.Scan(
			&record.ID,
			&record.Email,
			&record.BackupEmail,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateEmailAddress 覆盖已有记录
func (s *Store) UpdateEmailAddress(record *domain.EmailAddress) error {
	record.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE email_addresses
		SET email = %s, backup_email = %s, updated_at = %s
		WHERE id = %s
	`, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4))

	result, err := s.db.Exec(query,
		record.Email,
		record.BackupEmail,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrEmailAddressNotFound
	}
	return nil
}

// EmailTaken 判断 email 列中是否已存在该值（唯一性检查的同步读取）
func (s *Store) EmailTaken(value string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT id FROM email_addresses WHERE email = %s LIMIT 1
	`, s.placeholder(1))

	var id int64
	err := s.db.QueryRow(query, value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
