package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"

	"emailbook/backend/internal/domain"
	"emailbook/backend/internal/monitoring"
	"emailbook/backend/internal/storage"
)

// 通用错误消息
const (
	MsgInvalidJSON    = "JSON格式错误"
	MsgInvalidID      = "记录ID格式无效"
	MsgRecordNotFound = "记录不存在"
	MsgCreateFailed   = "创建记录失败"
	MsgUpdateFailed   = "更新记录失败"
	MsgListFailed     = "获取记录列表失败"
	MsgGetFailed      = "获取记录详情失败"
	MsgInternalError  = "服务器内部错误，请稍后重试"
)

// writeError 将业务错误翻译为 HTTP 响应
//
// 验证失败（唯一的可恢复错误种类）返回 400 并原样携带消息文本；
// 记录未找到返回 404；其余视为服务器内部错误。
func writeError(c *gin.Context, metrics *monitoring.Metrics, err error, fallbackMsg string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if metrics != nil {
			metrics.RecordValidationFailure(validationErr.Message)
		}
		BadRequest(c, validationErr.Message)
		return
	}

	if errors.Is(err, storage.ErrEmailAddressNotFound) {
		NotFound(c, MsgRecordNotFound)
		return
	}

	InternalError(c, fallbackMsg)
}
