package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/internal/interface/http/handler"
)

// 测试辅助工具
// 每个测试使用独立的SQLite文件,通过httptest直接调用路由,不需要启动服务

// BookData 图书响应
type BookData struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrorData 错误响应
type ErrorData struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message"`
}

// newTestConfig 测试配置,数据库放在临时目录
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Name: "libros-test", Port: 3000, Mode: "test"},
		Database: config.DatabaseConfig{
			Path:            filepath.Join(t.TempDir(), "libros.sqlite"),
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
		},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       time.Hour,
		},
	}
}

// setupRouter 组装完整依赖链(缓存与事件使用空实现)
// Repository ← Service ← UseCase ← Handler ← Router
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupRouterWithCache(t, appbook.NopBookCache{})
}

// setupRouterWithCache 使用指定的详情缓存组装路由
func setupRouterWithCache(t *testing.T, cache appbook.BookCache) *gin.Engine {
	t.Helper()

	cfg := newTestConfig(t)
	log := zap.NewNop()

	db, cleanup, err := sqlite.NewDB(cfg, log)
	require.NoError(t, err, "初始化数据库失败")
	t.Cleanup(cleanup)

	bookService := book.NewService(sqlite.NewBookRepository(db))
	publisher := appbook.NopEventPublisher{}

	bookHandler := handler.NewBookHandler(
		appbook.NewListBooksUseCase(bookService),
		appbook.NewGetBookUseCase(bookService, cache, log),
		appbook.NewCreateBookUseCase(bookService, publisher, log),
		appbook.NewUpdateBookUseCase(bookService, cache, publisher, log),
		appbook.NewDeleteBookUseCase(bookService, cache, publisher, log),
		appbook.NewSearchBooksUseCase(bookService),
	)

	r, err := NewRouter(cfg, log, otel.GetTracerProvider(), bookHandler)
	require.NoError(t, err, "初始化路由失败")
	return r
}

// doRequest 发送请求,body为string时原样发送(用于构造非法JSON)
func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b), "JSON序列化失败")
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode 解析JSON响应
func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "解析JSON响应失败: %s", w.Body.String())
}

// validBook 合法的图书请求,isbn由序号生成保证唯一
func validBook(n int) map[string]interface{} {
	return map[string]interface{}{
		"title":    fmt.Sprintf("Libro %d", n),
		"author":   "Jorge Luis Borges",
		"isbn":     fmt.Sprintf("978000000%04d", n),
		"category": "novel",
		"status":   "available",
	}
}

// createBook 新增图书并断言成功
func createBook(t *testing.T, r http.Handler, req map[string]interface{}) BookData {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/libros", req)
	require.Equal(t, http.StatusCreated, w.Code, "新增图书失败: %s", w.Body.String())

	var data BookData
	decode(t, w, &data)
	return data
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// memoryCache 内存缓存,down为true时模拟Redis不可用
type memoryCache struct {
	mu    sync.Mutex
	items map[uint]book.Book
	down  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[uint]book.Book)}
}

func (c *memoryCache) setDown(down bool) {
	c.mu.Lock()
	c.down = down
	c.mu.Unlock()
}

func (c *memoryCache) Get(_ context.Context, id uint) (*book.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return nil, errCacheDown
	}
	b, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (c *memoryCache) Set(_ context.Context, b *book.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	c.items[b.ID] = *b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.down {
		return errCacheDown
	}
	delete(c.items, id)
	return nil
}

var errCacheDown = errors.New("redis: connection refused")
