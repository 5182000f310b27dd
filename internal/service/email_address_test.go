package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emailbook/backend/internal/config"
	"emailbook/backend/internal/domain"
	"emailbook/backend/internal/storage/memory"
)

// MockRepository 模拟存储接口
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateEmailAddress(record *domain.EmailAddress) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockRepository) GetEmailAddress(id int64) (*domain.EmailAddress, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailAddress), args.Error(1)
}

func (m *MockRepository) ListEmailAddresses() ([]domain.EmailAddress, error) {
	args := m.Called()
	return args.Get(0).([]domain.EmailAddress), args.Error(1)
}

func (m *MockRepository) UpdateEmailAddress(record *domain.EmailAddress) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockRepository) EmailTaken(value string) (bool, error) {
	args := m.Called(value)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Health() error { return nil }
func (m *MockRepository) Close() error  { return nil }

func newTestService() (*EmailAddressService, *memory.Store) {
	store := memory.NewStore()
	return NewEmailAddressService(store, nil), store
}

func TestEmailAddressService_Create(t *testing.T) {
	t.Run("合法输入创建成功且值原样存储", func(t *testing.T) {
		svc, store := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{
			Email:          "User@Example.com",
			BackupEmail:    "backup@example.com",
			BackupEmailSet: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ID)
		assert.Equal(t, "User@Example.com", record.Email)
		assert.Equal(t, "backup@example.com", record.BackupEmail)

		stored, err := store.GetEmailAddress(record.ID)
		require.NoError(t, err)
		assert.Equal(t, "User@Example.com", stored.Email)
	})

	t.Run("backup_email可以省略", func(t *testing.T) {
		svc, _ := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)
		assert.Empty(t, record.BackupEmail)
	})

	t.Run("email缺失返回存在性错误", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(CreateEmailAddressInput{Email: nil})
		require.Error(t, err)
		assert.Equal(t, "Email must be present.", err.Error())
	})

	t.Run("email重复返回唯一性错误", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)

		_, err = svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.Error(t, err)
		assert.Equal(t, "Email must be unique.", err.Error())
	})

	t.Run("backup_email与已有email冲突同样被拒", func(t *testing.T) {
		// 唯一性检查始终针对 email 列：backup_email 的候选值
		// 只有与已存在的 email 值碰撞时才会被拒绝
		svc, _ := newTestService()

		_, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)

		_, err = svc.Create(CreateEmailAddressInput{
			Email:          "c@d.com",
			BackupEmail:    "a@b.com",
			BackupEmailSet: true,
		})
		require.Error(t, err)
		assert.Equal(t, "Email must be unique.", err.Error())
	})

	t.Run("backup_email与已有backup_email碰撞不会被拒", func(t *testing.T) {
		// 已知的奇特行为：backup_email 列本身不参与唯一性查询
		svc, _ := newTestService()

		_, err := svc.Create(CreateEmailAddressInput{
			Email:          "a@b.com",
			BackupEmail:    "shared@b.com",
			BackupEmailSet: true,
		})
		require.NoError(t, err)

		_, err = svc.Create(CreateEmailAddressInput{
			Email:          "c@d.com",
			BackupEmail:    "shared@b.com",
			BackupEmailSet: true,
		})
		assert.NoError(t, err)
	})

	t.Run("任一字段验证失败时不产生任何写入", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailTaken", "a@b.com").Return(false, nil)
		svc := NewEmailAddressService(repo, nil)

		_, err := svc.Create(CreateEmailAddressInput{
			Email:          "a@b.com",
			BackupEmail:    "no-at-sign",
			BackupEmailSet: true,
		})
		require.Error(t, err)
		assert.Equal(t, "Email must have an '@' in the address.", err.Error())

		// CreateEmailAddress 从未被调用
		repo.AssertNotCalled(t, "CreateEmailAddress", mock.Anything)
	})

	t.Run("配置追加的黑名单域名生效", func(t *testing.T) {
		cfg := &config.Config{
			Validation: config.ValidationConfig{
				ExtraBlockedDomains: []string{"blocked.example"},
			},
		}
		svc := NewEmailAddressService(memory.NewStore(), cfg)

		_, err := svc.Create(CreateEmailAddressInput{Email: "user@blocked.example"})
		require.Error(t, err)
		assert.Equal(t, "Email cannot be a hotmail or yahoo address.", err.Error())
	})
}

func TestEmailAddressService_Update(t *testing.T) {
	t.Run("改动字段重新验证后写入", func(t *testing.T) {
		svc, store := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)

		updated, err := svc.Update(record.ID, UpdateEmailAddressInput{
			Email:    "new@b.com",
			EmailSet: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "new@b.com", updated.Email)

		stored, err := store.GetEmailAddress(record.ID)
		require.NoError(t, err)
		assert.Equal(t, "new@b.com", stored.Email)
	})

	t.Run("未改动字段保持原值", func(t *testing.T) {
		svc, _ := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{
			Email:          "a@b.com",
			BackupEmail:    "backup@b.com",
			BackupEmailSet: true,
		})
		require.NoError(t, err)

		updated, err := svc.Update(record.ID, UpdateEmailAddressInput{
			Email:    "new@b.com",
			EmailSet: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "backup@b.com", updated.BackupEmail)
	})

	t.Run("验证失败中止整个写入", func(t *testing.T) {
		svc, store := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)

		// email 合法、backup_email 非法：两个字段都不应落库
		_, err = svc.Update(record.ID, UpdateEmailAddressInput{
			Email:          "new@b.com",
			EmailSet:       true,
			BackupEmail:    "user@hotmail.com",
			BackupEmailSet: true,
		})
		require.Error(t, err)
		assert.Equal(t, "Email cannot be a hotmail or yahoo address.", err.Error())

		stored, err := store.GetEmailAddress(record.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", stored.Email)
		assert.Empty(t, stored.BackupEmail)
	})

	t.Run("更新为自身当前值仍触发唯一性错误", func(t *testing.T) {
		// 唯一性查询不排除本记录，与写入前的同步读取语义一致
		svc, _ := newTestService()

		record, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
		require.NoError(t, err)

		_, err = svc.Update(record.ID, UpdateEmailAddressInput{
			Email:    "a@b.com",
			EmailSet: true,
		})
		require.Error(t, err)
		assert.Equal(t, "Email must be unique.", err.Error())
	})

	t.Run("记录不存在返回未找到错误", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Update(999, UpdateEmailAddressInput{
			Email:    "a@b.com",
			EmailSet: true,
		})
		assert.Error(t, err)
	})
}

func TestEmailAddressService_GetList(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(CreateEmailAddressInput{Email: "a@b.com"})
	require.NoError(t, err)

	record, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", record.Email)

	records, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
