package book

import (
	"context"
	"time"

	"github.com/xiebiao/libros/internal/domain/book"
)

// BookCache 图书详情缓存端口
// 由infrastructure/persistence/redis实现,未启用Redis时使用NopBookCache
type BookCache interface {
	// Get 未命中返回(nil, nil)
	Get(ctx context.Context, id uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}

// EventPublisher 领域事件发布端口
// 由pkg/mq.Publisher实现,未启用消息队列时使用NopEventPublisher
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// 事件路由键
const (
	EventBookCreated = "libro.creado"
	EventBookUpdated = "libro.actualizado"
	EventBookDeleted = "libro.eliminado"
)

// BookEvent 图书变更事件
// 删除事件只携带ID
type BookEvent struct {
	Event      string    `json:"event"`
	ID         uint      `json:"id"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	ISBN       string    `json:"isbn,omitempty"`
	Category   string    `json:"category,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newBookEvent(event string, b *book.Book) BookEvent {
	return BookEvent{
		Event:      event,
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		ISBN:       b.ISBN,
		Category:   b.Category,
		Status:     b.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// NopBookCache 不缓存,每次都未命中
type NopBookCache struct{}

func (NopBookCache) Get(context.Context, uint) (*book.Book, error) { return nil, nil }
func (NopBookCache) Set(context.Context, *book.Book) error         { return nil }
func (NopBookCache) Delete(context.Context, uint) error            { return nil }

// NopEventPublisher 丢弃所有事件
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, string, interface{}) error { return nil }
