package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例
// 设计说明:
// 1. 全量覆盖,字段规则与新增相同
// 2. 更新成功后删除缓存(不更新缓存,避免并发写入导致脏数据)
// 3. 发布libro.actualizado事件
type UpdateBookUseCase struct {
	bookService book.Service
	cache       BookCache
	publisher   EventPublisher
	log         *zap.Logger
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, cache BookCache, publisher EventPublisher, log *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
		publisher:   publisher,
		log:         log,
	}
}

// UpdateBookRequest 更新请求
// ID来自URL路径
type UpdateBookRequest struct {
	ID        uint
	Title     string
	Author    string
	ISBN      string
	Category  string
	Status    string
	CreatedAt time.Time // 可选,零值表示保留原值
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (result *book.Book, err error) {
	ctx, finish := startOperation(ctx, opUpdate, "UpdateBook")
	defer func() { finish(err) }()

	changes := &book.Book{
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Category:  req.Category,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}

	updated, err := uc.bookService.UpdateBook(ctx, req.ID, changes)
	if err != nil {
		return nil, err
	}

	evictCache(ctx, uc.cache, uc.log, updated.ID)
	uc.log.Info("图书已更新", zap.Uint("book_id", updated.ID), zap.String("status", updated.Status))
	publishEvent(ctx, uc.publisher, uc.log, EventBookUpdated, newBookEvent(EventBookUpdated, updated))

	return updated, nil
}
