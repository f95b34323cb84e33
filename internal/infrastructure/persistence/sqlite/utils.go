package sqlite

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一约束冲突
// SQLite错误信息: UNIQUE constraint failed: libros.isbn
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isISBNConflict 唯一约束冲突是否发生在isbn列上
func isISBNConflict(err error) bool {
	return strings.Contains(err.Error(), "libros.isbn")
}

// isConstraintError 其他约束失败(NOT NULL、CHECK、主键类型不符等)
func isConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "constraint failed") || strings.Contains(msg, "datatype mismatch")
}

// likePattern 构造包含匹配的LIKE模式，转义用户输入中的通配符
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
