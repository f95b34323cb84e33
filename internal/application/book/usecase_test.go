package book

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
)

// =========================================
// 测试替身
// =========================================

// stubRepository 内存仓储
type stubRepository struct {
	mu     sync.Mutex
	books  map[uint]book.Book
	nextID uint
	finds  int // FindByID调用次数,用于验证缓存命中
}

func newStubRepository() *stubRepository {
	return &stubRepository{books: make(map[uint]book.Book), nextID: 1}
}

func (r *stubRepository) List(ctx context.Context) ([]*book.Book, error) {
	return r.Search(ctx, book.SearchFilter{})
}

func (r *stubRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r *stubRepository) Create(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate.WithCause(errors.New("UNIQUE constraint failed: libros.isbn"))
		}
	}
	if b.ID == 0 {
		b.ID = r.nextID
	}
	if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
	r.books[b.ID] = *b
	return nil
}

func (r *stubRepository) Update(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	existing.Apply(b)
	r.books[b.ID] = existing
	*b = existing
	return nil
}

func (r *stubRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubRepository) Search(_ context.Context, f book.SearchFilter) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*book.Book, 0, len(r.books))
	for id := uint(1); id < r.nextID; id++ {
		b, ok := r.books[id]
		if !ok {
			continue
		}
		if strings.Contains(b.Title, f.Title) && strings.Contains(b.Author, f.Author) && strings.Contains(b.Category, f.Category) {
			cp := b
			result = append(result, &cp)
		}
	}
	return result, nil
}

// stubCache 内存缓存,可注入错误
type stubCache struct {
	items   map[uint]book.Book
	failErr error
	deleted []uint
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[uint]book.Book)}
}

func (c *stubCache) Get(_ context.Context, id uint) (*book.Book, error) {
	if c.failErr != nil {
		return nil, c.failErr
	}
	b, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (c *stubCache) Set(_ context.Context, b *book.Book) error {
	if c.failErr != nil {
		return c.failErr
	}
	c.items[b.ID] = *b
	return nil
}

func (c *stubCache) Delete(_ context.Context, id uint) error {
	c.deleted = append(c.deleted, id)
	if c.failErr != nil {
		return c.failErr
	}
	delete(c.items, id)
	return nil
}

// stubPublisher 记录发布的事件
type stubPublisher struct {
	keys    []string
	events  []BookEvent
	failErr error
}

func (p *stubPublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	p.keys = append(p.keys, routingKey)
	if ev, ok := message.(BookEvent); ok {
		p.events = append(p.events, ev)
	}
	return p.failErr
}

type fixture struct {
	repo      *stubRepository
	cache     *stubCache
	publisher *stubPublisher

	create *CreateBookUseCase
	get    *GetBookUseCase
	list   *ListBooksUseCase
	update *UpdateBookUseCase
	delete *DeleteBookUseCase
	search *SearchBooksUseCase
}

func newFixture() *fixture {
	repo := newStubRepository()
	cache := newStubCache()
	publisher := &stubPublisher{}
	svc := book.NewService(repo)
	log := zap.NewNop()

	return &fixture{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		create:    NewCreateBookUseCase(svc, publisher, log),
		get:       NewGetBookUseCase(svc, cache, log),
		list:      NewListBooksUseCase(svc),
		update:    NewUpdateBookUseCase(svc, cache, publisher, log),
		delete:    NewDeleteBookUseCase(svc, cache, publisher, log),
		search:    NewSearchBooksUseCase(svc),
	}
}

func validCreateRequest() CreateBookRequest {
	return CreateBookRequest{
		Title:    "Don Quijote de la Mancha",
		Author:   "Miguel de Cervantes",
		ISBN:     "9788424116903",
		Category: "novel",
		Status:   book.StatusAvailable,
	}
}

// =========================================
// 用例测试
// =========================================

func TestCreateBookUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	require.Equal(t, []string{EventBookCreated}, f.publisher.keys)
	assert.Equal(t, created.ID, f.publisher.events[0].ID)
	assert.Equal(t, created.ISBN, f.publisher.events[0].ISBN)

	t.Run("ISBN重复不发布事件", func(t *testing.T) {
		_, err := f.create.Execute(ctx, validCreateRequest())
		assert.True(t, errors.Is(err, book.ErrISBNDuplicate))
		assert.Len(t, f.publisher.keys, 1)
	})

	t.Run("显式ID与创建时间", func(t *testing.T) {
		req := validCreateRequest()
		req.ID = 10
		req.ISBN = "1234567890"
		req.CreatedAt = time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

		b, err := f.create.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, uint(10), b.ID)
		assert.True(t, req.CreatedAt.Equal(b.CreatedAt))
	})

	t.Run("校验失败", func(t *testing.T) {
		req := validCreateRequest()
		req.ISBN = "5555555555"
		req.Category = "sci-fi"
		_, err := f.create.Execute(ctx, req)
		assert.True(t, book.IsValidationError(err))
	})
}

func TestCreateBookUseCase_PublishFailureIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.failErr = errors.New("channel/connection is not open")

	created, err := f.create.Execute(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestGetBookUseCase_CacheAside(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)

	// 第一次未命中,查库并写回缓存
	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, 1, f.repo.finds)
	assert.Contains(t, f.cache.items, created.ID)

	// 第二次命中缓存,不查库
	_, err = f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.finds)

	_, err = f.get.Execute(ctx, 404)
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestGetBookUseCase_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)

	f.cache.failErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateBookUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)
	_, err = f.get.Execute(ctx, created.ID) // 预热缓存
	require.NoError(t, err)

	req := UpdateBookRequest{
		ID:       created.ID,
		Title:    created.Title,
		Author:   created.Author,
		ISBN:     created.ISBN,
		Category: created.Category,
		Status:   book.StatusLoaned,
	}
	updated, err := f.update.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, book.StatusLoaned, updated.Status)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "未提供created_at时保留原值")

	// 缓存已失效,再次读取得到新状态
	assert.NotContains(t, f.cache.items, created.ID)
	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StatusLoaned, got.Status)

	assert.Equal(t, []string{EventBookCreated, EventBookUpdated}, f.publisher.keys)

	t.Run("不存在", func(t *testing.T) {
		req.ID = 999
		_, err := f.update.Execute(ctx, req)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
		assert.Len(t, f.publisher.keys, 2)
	})
}

func TestDeleteBookUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, f.delete.Execute(ctx, created.ID))
	assert.Equal(t, []uint{created.ID}, f.cache.deleted)
	assert.Equal(t, EventBookDeleted, f.publisher.keys[len(f.publisher.keys)-1])

	_, err = f.get.Execute(ctx, created.ID)
	assert.True(t, errors.Is(err, book.ErrBookNotFound))

	assert.True(t, errors.Is(f.delete.Execute(ctx, created.ID), book.ErrBookNotFound))
}

func TestDeleteBookUseCase_CacheFailureIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.create.Execute(ctx, validCreateRequest())
	require.NoError(t, err)

	f.cache.failErr = errors.New("redis: connection pool timeout")
	assert.NoError(t, f.delete.Execute(ctx, created.ID))
}

func TestListAndSearchBooksUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	empty, err := f.list.Execute(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i, title := range []string{"El Aleph", "Ficciones", "Rayuela"} {
		req := validCreateRequest()
		req.Title = title
		req.ISBN = "100000000" + string(rune('1'+i))
		_, err := f.create.Execute(ctx, req)
		require.NoError(t, err)
	}

	all, err := f.list.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := f.search.Execute(ctx, SearchBooksRequest{Title: "Fic"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ficciones", found[0].Title)

	unfiltered, err := f.search.Execute(ctx, SearchBooksRequest{})
	require.NoError(t, err)
	assert.Len(t, unfiltered, 3)
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, "success", resultOf(nil))
	assert.Equal(t, "not_found", resultOf(book.ErrBookNotFound))
	assert.Equal(t, "invalid", resultOf(book.ErrInvalidISBN))
	assert.Equal(t, "error", resultOf(book.ErrISBNDuplicate))
	assert.Equal(t, "error", resultOf(errors.New("disk I/O error")))
}
