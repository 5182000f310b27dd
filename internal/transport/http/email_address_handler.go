package httptransport

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"emailbook/backend/internal/monitoring"
	"emailbook/backend/internal/service"
)

// EmailAddressHandler 邮箱地址记录处理器
type EmailAddressHandler struct {
	service *service.EmailAddressService
	metrics *monitoring.Metrics
}

// NewEmailAddressHandler 创建邮箱地址记录处理器
func NewEmailAddressHandler(svc *service.EmailAddressService, metrics *monitoring.Metrics) *EmailAddressHandler {
	return &EmailAddressHandler{
		service: svc,
		metrics: metrics,
	}
}

// emailAddressPayload 请求体结构
//
// 字段使用 json.RawMessage 延迟解码：非字符串的 JSON 值（数字、布尔、
// 对象）必须到达验证门的类型检查，而不是在绑定阶段被拒绝。
type emailAddressPayload struct {
	Email       json.RawMessage `json:"email"`
	BackupEmail json.RawMessage `json:"backup_email"`
}

// decodeField 将原始 JSON 值解码为 any
//
// 返回值 set 表示该键是否出现在请求体中；键存在但值为 null 时
// set 为 true 且 value 为 nil，对应验证门的存在性检查。
func decodeField(raw json.RawMessage) (value any, set bool, err error) {
	if raw == nil {
		return nil, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, true, err
	}
	return value, true, nil
}

// Create 创建邮箱地址记录
//
// POST /v1/email-addresses
func (h *EmailAddressHandler) Create(c *gin.Context) {
	var payload emailAddressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}

	email, _, err := decodeField(payload.Email)
	if err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}
	backupEmail, backupSet, err := decodeField(payload.BackupEmail)
	if err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}

	record, err := h.service.Create(service.CreateEmailAddressInput{
		Email:          email,
		BackupEmail:    backupEmail,
		BackupEmailSet: backupSet,
	})
	if err != nil {
		writeError(c, h.metrics, err, MsgCreateFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordsCreated.Inc()
	}
	Created(c, record)
}

// Update 更新邮箱地址记录的字段
//
// PATCH /v1/email-addresses/:id
func (h *EmailAddressHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, MsgInvalidID)
		return
	}

	var payload emailAddressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}

	email, emailSet, err := decodeField(payload.Email)
	if err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}
	backupEmail, backupSet, err := decodeField(payload.BackupEmail)
	if err != nil {
		BadRequest(c, MsgInvalidJSON)
		return
	}

	record, err := h.service.Update(id, service.UpdateEmailAddressInput{
		Email:          email,
		EmailSet:       emailSet,
		BackupEmail:    backupEmail,
		BackupEmailSet: backupSet,
	})
	if err != nil {
		writeError(c, h.metrics, err, MsgUpdateFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordsUpdated.Inc()
	}
	Success(c, record)
}

// Get 获取单条记录
//
// GET /v1/email-addresses/:id
func (h *EmailAddressHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, MsgInvalidID)
		return
	}

	record, err := h.service.Get(id)
	if err != nil {
		writeError(c, h.metrics, err, MsgGetFailed)
		return
	}

	Success(c, record)
}

// List 获取全部记录
//
// GET /v1/email-addresses
func (h *EmailAddressHandler) List(c *gin.Context) {
	records, err := h.service.List()
	if err != nil {
		writeError(c, h.metrics, err, MsgListFailed)
		return
	}

	Success(c, gin.H{
		"records": records,
		"count":   len(records),
	})
}
