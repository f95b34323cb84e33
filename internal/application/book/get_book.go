package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/pkg/metrics"
)

// GetBookUseCase 图书详情用例(Cache-Aside)
// 1. 先查缓存,命中直接返回
// 2. 未命中查库,结果写回缓存
// 缓存读写失败只记录日志,退化为直接查库
type GetBookUseCase struct {
	bookService book.Service
	cache       BookCache
	log         *zap.Logger
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service, cache BookCache, log *zap.Logger) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
		log:         log,
	}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (result *book.Book, err error) {
	ctx, finish := startOperation(ctx, opGet, "GetBook")
	defer func() { finish(err) }()

	// 1. 查缓存
	cached, cacheErr := uc.cache.Get(ctx, id)
	switch {
	case cacheErr != nil:
		metrics.IncCacheRequest("error")
		uc.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(cacheErr))
	case cached != nil:
		metrics.IncCacheRequest("hit")
		return cached, nil
	default:
		metrics.IncCacheRequest("miss")
	}

	// 2. 查库
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 写回缓存
	if err := uc.cache.Set(ctx, b); err != nil {
		uc.log.Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}

	return b, nil
}
