package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// 业务错误码
//
//	10xxx 通用 · 21xxx 类别 · 22xxx 标准 · 23xxx 用户 · 24xxx 文档 · 25xxx 评审计划 · 26xxx 导出
type errorMapping struct {
	err    error
	status int
	code   int
}

var errorTable = []errorMapping{
	{service.ErrCategoryNotFound, http.StatusNotFound, 21001},
	{service.ErrCategoryNameExists, http.StatusConflict, 21002},
	{service.ErrStandardNotFound, http.StatusNotFound, 22001},
	{service.ErrStandardNameExists, http.StatusConflict, 22002},
	{service.ErrUserNotFound, http.StatusNotFound, 23001},
	{service.ErrUserEmailExists, http.StatusConflict, 23002},
	{service.ErrDocumentNotFound, http.StatusNotFound, 24001},
	{service.ErrDocumentCodeExists, http.StatusConflict, 24002},
	{service.ErrInvalidTransition, http.StatusConflict, 24003},
	{service.ErrScheduleNotFound, http.StatusNotFound, 25001},
	{service.ErrDeleteRejected, http.StatusConflict, 10007},
	{registry.ErrUnknownSortField, http.StatusBadRequest, 10001},
	{registry.ErrInvalidPageSize, http.StatusBadRequest, 10001},
	{registry.ErrInvalidPage, http.StatusBadRequest, 10001},
}

// handleError 把业务错误映射为统一响应
func handleError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Fields())
		return
	}

	var be *service.BlockedError
	if errors.As(err, &be) {
		response.ErrorWithDetails(c, http.StatusConflict, 10006, be.Error(), gin.H{
			"entity":     be.Entity,
			"dependents": be.Dependents,
		})
		return
	}

	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, err.Error())
			return
		}
	}

	_ = c.Error(err)
	response.InternalError(c)
}
