package dto

import (
	"time"

	"github.com/xiebiao/libros/internal/domain/book"
)

// BookRequest HTTP新增/更新请求
// validator tag说明:
// - nodigits: 不含数字(pkg/validator注册)
// - bookcategory: 预定义分类之一(router注册)
// - number: 只允许数字字符
// id和created_at可选,id须为正整数,created_at须为ISO 8601日期或日期时间,否则视为校验失败
type BookRequest struct {
	ID        *uint      `json:"id" binding:"omitempty,min=1" example:"1"`
	Title     string     `json:"title" binding:"required,max=255" example:"Cien años de soledad"`
	Author    string     `json:"author" binding:"required,max=255,nodigits" example:"Gabriel García Márquez"`
	ISBN      string     `json:"isbn" binding:"required,min=10,max=13,number" example:"9780307474728"`
	Category  string     `json:"category" binding:"required,bookcategory" example:"novel"`
	Status    string     `json:"status" binding:"required,oneof=available loaned" example:"available"`
	CreatedAt *Timestamp `json:"created_at" swaggertype:"string" example:"2024-01-15T10:30:00Z"`
}

// IDOrZero 请求体中的ID,未提供时为0
func (r *BookRequest) IDOrZero() uint {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// CreatedAtOrZero 请求体中的创建时间,未提供时为零值
func (r *BookRequest) CreatedAtOrZero() time.Time {
	if r.CreatedAt == nil {
		return time.Time{}
	}
	return r.CreatedAt.Time
}

// SearchBooksRequest 搜索参数,均可选
type SearchBooksRequest struct {
	Title    string `form:"titulo" example:"Aleph"`
	Author   string `form:"autor" example:"Borges"`
	Category string `form:"categoria" example:"short story"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        uint      `json:"id" example:"1"`
	Title     string    `json:"title" example:"Cien años de soledad"`
	Author    string    `json:"author" example:"Gabriel García Márquez"`
	ISBN      string    `json:"isbn" example:"9780307474728"`
	Category  string    `json:"category" example:"novel"`
	Status    string    `json:"status" example:"available"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Category:  b.Category,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// NewBookListResponse 空结果返回[]而不是null
func NewBookListResponse(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}
