package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// 响应约定:
// 1. 成功时直接返回资源本身(对象或数组),不做信封包装
// 2. 失败时返回{"error": "..."},新增/更新失败额外带details
// 3. 参数校验失败统一返回{"message": "Datos inválidos"},不暴露字段细节

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string `json:"error" example:"Libro no encontrado"`
	Details string `json:"details,omitempty" example:"UNIQUE constraint failed: libros.isbn"`
}

// MessageResponse 提示信息响应
type MessageResponse struct {
	Message string `json:"message" example:"Libro eliminado correctamente"`
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 {"message": msg}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// InvalidParams 400 {"message": "Datos inválidos"}
func InvalidParams(c *gin.Context) {
	c.JSON(http.StatusBadRequest, MessageResponse{Message: apperrors.ErrInvalidParams.Message})
}

// NotFound 404 {"error": "Libro no encontrado"}
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: apperrors.ErrBookNotFound.Message})
}

// Error 查询/删除类接口的错误响应
// 用法：
//
//	books, err := uc.Execute(ctx)
//	if err != nil {
//	    response.Error(c, err, "Error al obtener los libros")
//	    return
//	}
//
// 资源不存在返回404及AppError的Message,其他错误只返回message,原因写日志
func Error(c *gin.Context, err error, message string) {
	appErr := apperrors.GetAppError(err)

	switch status := appErr.HTTPStatus(); {
	case appErr.Code == apperrors.ErrCodeInvalidParams:
		InvalidParams(c)
	case status == http.StatusNotFound:
		c.JSON(status, ErrorResponse{Error: appErr.Message})
	default:
		logError(c, appErr, message)
		c.JSON(status, ErrorResponse{Error: message})
	}
}

// ErrorWithDetails 新增/更新接口的错误响应
// 除404和参数错误外一律返回400,details为底层错误信息(如唯一约束冲突)
func ErrorWithDetails(c *gin.Context, err error, message string) {
	appErr := apperrors.GetAppError(err)

	switch {
	case appErr.Code == apperrors.ErrCodeInvalidParams:
		InvalidParams(c)
	case appErr.HTTPStatus() == http.StatusNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: appErr.Message})
	default:
		logError(c, appErr, message)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   message,
			Details: appErr.Detail(),
		})
	}
}

// logError 记录错误详情(包含内部错误)
func logError(c *gin.Context, appErr *apperrors.AppError, message string) {
	zap.L().Error(message,
		zap.String("request_id", c.GetString("request_id")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("code", appErr.Code),
		zap.Error(appErr),
	)
}
