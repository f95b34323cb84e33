package book

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validBook() *Book {
	return NewBook("Cien años de soledad", "Gabriel García Márquez", "9780307474728", "novel", StatusAvailable, time.Time{})
}

func TestNewBook(t *testing.T) {
	b := validBook()
	assert.False(t, b.CreatedAt.IsZero(), "未指定创建时间时应使用当前时间")
	assert.Equal(t, time.UTC, b.CreatedAt.Location(), "创建时间统一为UTC")
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	b = NewBook("t", "a", "1234567890", "poetry", StatusLoaned, at)
	assert.Equal(t, at, b.CreatedAt)
	assert.Equal(t, StatusLoaned, b.Status)
	assert.Equal(t, time.UTC, b.UpdatedAt.Location())
}

func TestBook_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Book)
		want   error
	}{
		{"合法图书", func(b *Book) {}, nil},
		{"书名为空", func(b *Book) { b.Title = "" }, ErrInvalidTitle},
		{"书名超长", func(b *Book) { b.Title = strings.Repeat("x", MaxTitleLen+1) }, ErrInvalidTitle},
		{"书名恰好255", func(b *Book) { b.Title = strings.Repeat("ñ", MaxTitleLen) }, nil},
		{"作者为空", func(b *Book) { b.Author = "" }, ErrInvalidAuthor},
		{"作者包含数字", func(b *Book) { b.Author = "John3" }, ErrInvalidAuthor},
		{"作者超长", func(b *Book) { b.Author = strings.Repeat("a", MaxAuthorLen+1) }, ErrInvalidAuthor},
		{"ISBN为空", func(b *Book) { b.ISBN = "" }, ErrInvalidISBN},
		{"ISBN太短", func(b *Book) { b.ISBN = "123456789" }, ErrInvalidISBN},
		{"ISBN太长", func(b *Book) { b.ISBN = "12345678901234" }, ErrInvalidISBN},
		{"ISBN含字母", func(b *Book) { b.ISBN = "97803074747X" }, ErrInvalidISBN},
		{"ISBN含分隔符", func(b *Book) { b.ISBN = "978-0307474" }, ErrInvalidISBN},
		{"ISBN十位", func(b *Book) { b.ISBN = "0307474720" }, nil},
		{"分类不在集合中", func(b *Book) { b.Category = "sci-fi" }, ErrInvalidCategory},
		{"分类为空", func(b *Book) { b.Category = "" }, ErrInvalidCategory},
		{"分类含空格", func(b *Book) { b.Category = "science fiction" }, nil},
		{"状态非法", func(b *Book) { b.Status = "lost" }, ErrInvalidStatus},
		{"状态已借出", func(b *Book) { b.Status = StatusLoaned }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook()
			tt.mutate(b)
			assert.Equal(t, tt.want, b.Validate())
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories, 15)
	for _, c := range Categories {
		assert.True(t, IsValidCategory(c), c)
		assert.LessOrEqual(t, len(c), MaxCategoryLen)
	}
	assert.False(t, IsValidCategory("Novel"), "分类区分大小写")
}

func TestBook_Apply(t *testing.T) {
	created := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	b := NewBook("Old", "Author", "1234567890", "essay", StatusAvailable, created)
	b.ID = 7

	changes := NewBook("New", "Other", "0987654321", "history", StatusLoaned, time.Time{})
	changes.CreatedAt = time.Time{}
	b.Apply(changes)

	assert.Equal(t, uint(7), b.ID)
	assert.Equal(t, "New", b.Title)
	assert.Equal(t, "Other", b.Author)
	assert.Equal(t, "0987654321", b.ISBN)
	assert.Equal(t, "history", b.Category)
	assert.Equal(t, StatusLoaned, b.Status)
	assert.Equal(t, created, b.CreatedAt, "未提供创建时间时保留原值")
}

func TestSearchFilter_IsEmpty(t *testing.T) {
	assert.True(t, SearchFilter{}.IsEmpty())
	assert.False(t, SearchFilter{Author: "Borges"}.IsEmpty())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrInvalidAuthor))
	assert.False(t, IsValidationError(ErrBookNotFound))
	assert.False(t, IsValidationError(nil))
}
