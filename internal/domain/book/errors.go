package book

import (
	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.ErrISBNDuplicate

	// ErrDuplicateEntry 其他唯一约束冲突(如显式指定的ID已存在)
	ErrDuplicateEntry = apperrors.ErrDuplicateEntry

	// ErrConstraint 存储层拒绝(类型/长度不匹配等)
	ErrConstraint = apperrors.New(apperrors.ErrCodeConstraint, "restricción de almacenamiento")

	// 字段校验错误,对外统一返回"Datos inválidos"
	ErrInvalidTitle    = apperrors.New(apperrors.ErrCodeInvalidParams, "título inválido")
	ErrInvalidAuthor   = apperrors.New(apperrors.ErrCodeInvalidParams, "autor inválido")
	ErrInvalidISBN     = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN inválido")
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "categoría inválida")
	ErrInvalidStatus   = apperrors.New(apperrors.ErrCodeInvalidParams, "estado inválido")
)

// IsValidationError 是否为字段校验错误
func IsValidationError(err error) bool {
	if !apperrors.IsAppError(err) {
		return false
	}
	return apperrors.GetAppError(err).Code == apperrors.ErrCodeInvalidParams
}
