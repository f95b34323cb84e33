package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// SearchBooksUseCase 图书搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService: bookService,
	}
}

// SearchBooksRequest 搜索条件,空字符串表示不过滤
type SearchBooksRequest struct {
	Title    string
	Author   string
	Category string
}

// Execute 执行搜索,没有任何条件时返回全部图书
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (result []*book.Book, err error) {
	ctx, finish := startOperation(ctx, opSearch, "SearchBooks")
	defer func() { finish(err) }()

	return uc.bookService.SearchBooks(ctx, book.SearchFilter{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
	})
}
