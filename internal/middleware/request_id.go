package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey 请求 ID 在上下文中的键名
const RequestIDKey = "requestID"

// RequestIDHeader 请求 ID 响应头名称
const RequestIDHeader = "X-Request-ID"

// RequestID 请求 ID 中间件
//
// 优先使用调用方传入的 X-Request-ID，没有则生成新的 UUID。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
