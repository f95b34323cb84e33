package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 不分页,按ID升序返回全部图书
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context) (result []*book.Book, err error) {
	ctx, finish := startOperation(ctx, opList, "ListBooks")
	defer func() { finish(err) }()

	return uc.bookService.ListBooks(ctx)
}
