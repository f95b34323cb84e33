package book

import (
	"context"
	"errors"
	"sync"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/pkg/circuitbreaker"
)

// GuardedBookCache 带熔断的缓存
// 缓存不可用时熔断器打开,读写直接跳过,请求退化为查库而不是逐个等待Redis超时
//
// 删除未送达的ID记入stale:
// 1. Get视为未命中,并在熔断器放行时重试删除
// 2. Set前先补删,补删失败则跳过写入
// 保证熔断恢复后不会读到更新前的旧缓存
type GuardedBookCache struct {
	cache   BookCache
	breaker *circuitbreaker.CircuitBreaker

	mu    sync.Mutex
	stale map[uint]struct{}
}

// NewGuardedBookCache 创建带熔断的缓存
func NewGuardedBookCache(cache BookCache, breaker *circuitbreaker.CircuitBreaker) *GuardedBookCache {
	return &GuardedBookCache{
		cache:   cache,
		breaker: breaker,
		stale:   make(map[uint]struct{}),
	}
}

// Get 熔断期间或缓存待失效时视为未命中
func (g *GuardedBookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	if g.isStale(id) {
		g.retryEvict(ctx, id)
		return nil, nil
	}

	var cached *book.Book
	err := g.breaker.Execute(func() error {
		var err error
		cached, err = g.cache.Get(ctx, id)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil, nil
	}
	return cached, err
}

// Set 熔断期间跳过写入
func (g *GuardedBookCache) Set(ctx context.Context, b *book.Book) error {
	if g.isStale(b.ID) && !g.retryEvict(ctx, b.ID) {
		return nil
	}

	err := g.breaker.Execute(func() error {
		return g.cache.Set(ctx, b)
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil
	}
	return err
}

// Delete 删除失败(含熔断)时返回错误,ID记为待失效
func (g *GuardedBookCache) Delete(ctx context.Context, id uint) error {
	err := g.breaker.Execute(func() error {
		return g.cache.Delete(ctx, id)
	})
	if err != nil {
		g.markStale(id)
		return err
	}
	g.clearStale(id)
	return nil
}

// retryEvict 补删待失效的缓存,成功返回true
func (g *GuardedBookCache) retryEvict(ctx context.Context, id uint) bool {
	err := g.breaker.Execute(func() error {
		return g.cache.Delete(ctx, id)
	})
	if err != nil {
		return false
	}
	g.clearStale(id)
	return true
}

func (g *GuardedBookCache) isStale(id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.stale[id]
	return ok
}

func (g *GuardedBookCache) markStale(id uint) {
	g.mu.Lock()
	g.stale[id] = struct{}{}
	g.mu.Unlock()
}

func (g *GuardedBookCache) clearStale(id uint) {
	g.mu.Lock()
	delete(g.stale, id)
	g.mu.Unlock()
}

// CacheCallSucceeded 请求方取消不计为缓存故障
func CacheCallSucceeded(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}
