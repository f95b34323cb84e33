package book

import (
	"time"
	"unicode"
	"unicode/utf8"
)

// Book 图书实体
// 设计说明:
// 1. 目录中唯一的实体,字段与libros表一一对应
// 2. ISBN作为业务唯一标识(数据库层UNIQUE索引保证)
// 3. Category/Status只能取预定义集合中的值
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者(不能包含数字)
	ISBN      string // ISBN号(10-13位纯数字)
	Category  string // 分类
	Status    string // 状态(available/loaned)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 字段长度限制(与表结构一致)
const (
	MaxTitleLen    = 255
	MaxAuthorLen   = 255
	MinISBNLen     = 10
	MaxISBNLen     = 13
	MaxCategoryLen = 100
	MaxStatusLen   = 50
)

// 图书状态
const (
	StatusAvailable = "available" // 可借
	StatusLoaned    = "loaned"    // 已借出
)

// Categories 允许的图书分类(共15个)
var Categories = []string{
	"novel",
	"short story",
	"poetry",
	"essay",
	"theater",
	"biography",
	"history",
	"children",
	"fantasy",
	"science fiction",
	"mystery",
	"romance",
	"adventure",
	"self-help",
	"other",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// NewBook 创建新图书(工厂方法)
// createdAt为零值时使用当前时间
func NewBook(title, author, isbn, category, status string, createdAt time.Time) *Book {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Category:  category,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
}

// Validate 校验字段规则
// 只做语法校验(必填、长度、字符类别、集合成员),ISBN唯一性由存储层保证
func (b *Book) Validate() error {
	switch {
	case !validText(b.Title, MaxTitleLen):
		return ErrInvalidTitle
	case !IsValidAuthor(b.Author):
		return ErrInvalidAuthor
	case !IsValidISBN(b.ISBN):
		return ErrInvalidISBN
	case !IsValidCategory(b.Category):
		return ErrInvalidCategory
	case !IsValidStatus(b.Status):
		return ErrInvalidStatus
	}
	return nil
}

// Apply 用另一个实体的字段覆盖当前实体(ID保持不变)
// changes.CreatedAt为零值时保留原创建时间
func (b *Book) Apply(changes *Book) {
	b.Title = changes.Title
	b.Author = changes.Author
	b.ISBN = changes.ISBN
	b.Category = changes.Category
	b.Status = changes.Status
	if !changes.CreatedAt.IsZero() {
		b.CreatedAt = changes.CreatedAt
	}
	b.UpdatedAt = time.Now().UTC()
}

// IsValidAuthor 作者必填且不含数字
func IsValidAuthor(author string) bool {
	if !validText(author, MaxAuthorLen) {
		return false
	}
	for _, r := range author {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidISBN 10-13位,只允许ASCII数字
// 不校验校验位,也不接受分隔符(978-7-...)
func IsValidISBN(isbn string) bool {
	if len(isbn) < MinISBNLen || len(isbn) > MaxISBNLen {
		return false
	}
	for i := 0; i < len(isbn); i++ {
		if isbn[i] < '0' || isbn[i] > '9' {
			return false
		}
	}
	return true
}

// IsValidCategory 分类是否在预定义集合中
func IsValidCategory(category string) bool {
	_, ok := categorySet[category]
	return ok
}

// IsValidStatus 状态只能是available或loaned
func IsValidStatus(status string) bool {
	return status == StatusAvailable || status == StatusLoaned
}

func validText(s string, max int) bool {
	return s != "" && utf8.RuneCountInString(s) <= max
}
