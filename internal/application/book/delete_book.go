package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例
// 物理删除,成功后删除缓存并发布libro.eliminado事件
type DeleteBookUseCase struct {
	bookService book.Service
	cache       BookCache
	publisher   EventPublisher
	log         *zap.Logger
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, cache BookCache, publisher EventPublisher, log *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
		publisher:   publisher,
		log:         log,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, finish := startOperation(ctx, opDelete, "DeleteBook")
	defer func() { finish(err) }()

	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	evictCache(ctx, uc.cache, uc.log, id)
	uc.log.Info("图书已删除", zap.Uint("book_id", id))
	publishEvent(ctx, uc.publisher, uc.log, EventBookDeleted, BookEvent{
		Event:      EventBookDeleted,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
