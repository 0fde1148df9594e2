package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// BodyLimit 限制请求体大小
// 声明了 Content-Length 的超限请求直接拒绝；分块上传由 MaxBytesReader 在读取时截断，
// 交给 bindJSON 转成 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		if req.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if req.Body != nil && req.Body != http.NoBody {
			req.Body = http.MaxBytesReader(c.Writer, req.Body, maxBytes)
		}
		c.Next()
	}
}
