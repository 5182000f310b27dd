package domain

import "strings"

// 验证常量
const (
	// MaxEmailLength RFC 5322 邮箱地址最大长度
	MaxEmailLength = 254
)

// BlockedDomains 内置拒绝的邮箱域名（精确匹配，区分大小写）。
// 配置可以追加额外域名，但内置的两个始终生效。
var BlockedDomains = []string{"hotmail.com", "yahoo.com"}

// ValidationError 表示字段验证失败。
//
// 所有验证失败都是同一种错误，仅通过消息文本区分；
// 调用方可以修正值后重试。
type ValidationError struct {
	Message string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError 创建验证错误
func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// EmailLookup 定义唯一性检查所需的存储查询能力。
//
// 验证门不持有任何全局数据库句柄，查询能力由调用方显式注入。
type EmailLookup interface {
	// EmailTaken 判断 email 列中是否已存在该值
	EmailTaken(value string) (bool, error)
}

// EmailLookupFunc 函数适配器，便于测试注入
type EmailLookupFunc func(value string) (bool, error)

// EmailTaken 实现 EmailLookup 接口
func (f EmailLookupFunc) EmailTaken(value string) (bool, error) {
	return f(value)
}

// ValidateEmailValue 对候选值执行完整的验证门检查。
//
// 检查按固定顺序执行，首个失败即返回，后续检查不再运行：
//  1. 存在性：值不能为空或缺失
//  2. 类型：值必须是字符串
//  3. 格式：必须包含 '@'
//  4. 唯一性：email 列中不能已存在该值（同步查询持久存储）
//  5. 长度：不超过 254 字符
//  6. 域名黑名单：首个 '@' 之后的部分不能是被拒绝的域名
//
// 通过全部检查的值按原样接受，不做任何规范化、去空格或大小写折叠。
// extraBlocked 追加在内置黑名单之后，内置黑名单始终生效。
func ValidateEmailValue(value any, lookup EmailLookup, extraBlocked []string) error {
	// 存在性检查（nil、空字符串以及 JSON 解码出的 0/false 都视为缺失）
	if isAbsent(value) {
		return newValidationError("Email must be present.")
	}

	// 类型检查
	address, ok := value.(string)
	if !ok {
		return newValidationError("Email must be a string.")
	}

	// 格式检查
	if !strings.Contains(address, "@") {
		return newValidationError("Email must have an '@' in the address.")
	}

	// 唯一性检查：无论正在验证哪个字段，都只查询 email 列
	if lookup != nil {
		taken, err := lookup.EmailTaken(address)
		if err != nil {
			return err
		}
		if taken {
			return newValidationError("Email must be unique.")
		}
	}

	// 长度检查
	if len(address) > MaxEmailLength {
		return newValidationError("Email is too long.")
	}

	// 域名黑名单检查（取首个 '@' 与下一个 '@' 之间的段，精确匹配）
	emailDomain := strings.Split(address, "@")[1]
	for _, blocked := range BlockedDomains {
		if emailDomain == blocked {
			return newValidationError("Email cannot be a hotmail or yahoo address.")
		}
	}
	for _, blocked := range extraBlocked {
		if emailDomain == blocked {
			return newValidationError("Email cannot be a hotmail or yahoo address.")
		}
	}

	return nil
}

// isAbsent 判断候选值是否等价于缺失。
// JSON 解码产物中 null、""、0、false 都算缺失，与存在性检查的语义一致。
func isAbsent(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case bool:
		return !v
	}
	return false
}
