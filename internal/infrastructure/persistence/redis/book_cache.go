package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/libros/internal/domain/book"
	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// BookCache 图书详情缓存(Cache-Aside)
// 设计说明:
// 1. 只缓存单本图书,列表和搜索结果直接查库
// 2. 更新、删除图书后删除缓存,下次读取时重新加载
// 3. Key格式: libros:book:{id}
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// cachedBook 缓存中的JSON结构,领域实体不带序列化tag
type cachedBook struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get 读取缓存,未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	val, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.ErrRedisError.WithCause(err)
	}

	var cb cachedBook
	if err := json.Unmarshal(val, &cb); err != nil {
		return nil, apperrors.ErrRedisError.WithCause(fmt.Errorf("反序列化失败: %w", err))
	}

	return &book.Book{
		ID:        cb.ID,
		Title:     cb.Title,
		Author:    cb.Author,
		ISBN:      cb.ISBN,
		Category:  cb.Category,
		Status:    cb.Status,
		CreatedAt: cb.CreatedAt,
		UpdatedAt: cb.UpdatedAt,
	}, nil
}

// Set 写入缓存并设置过期时间
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(cachedBook{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Category:  b.Category,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	})
	if err != nil {
		return apperrors.ErrRedisError.WithCause(fmt.Errorf("序列化失败: %w", err))
	}

	if err := c.client.Set(ctx, bookKey(b.ID), val, c.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// Delete 删除缓存,key不存在不算错误
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

func bookKey(id uint) string {
	return fmt.Sprintf("libros:book:%d", id)
}
