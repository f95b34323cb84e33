package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 字段校验与ISBN唯一性由领域服务和仓储负责
// 2. 创建成功后发布libro.creado事件
// 3. 不预热缓存,第一次GET时再加载
type CreateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
	log         *zap.Logger
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, publisher EventPublisher, log *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
		log:         log,
	}
}

// CreateBookRequest 新增请求
type CreateBookRequest struct {
	ID        uint      // 可选,0表示自增
	Title     string    // 书名
	Author    string    // 作者
	ISBN      string    // ISBN
	Category  string    // 分类
	Status    string    // 状态
	CreatedAt time.Time // 可选,零值表示当前时间
}

// Execute 执行新增用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (result *book.Book, err error) {
	ctx, finish := startOperation(ctx, opCreate, "CreateBook")
	defer func() { finish(err) }()

	b := book.NewBook(req.Title, req.Author, req.ISBN, req.Category, req.Status, req.CreatedAt)
	b.ID = req.ID

	created, err := uc.bookService.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已创建", zap.Uint("book_id", created.ID), zap.String("isbn", created.ISBN))
	publishEvent(ctx, uc.publisher, uc.log, EventBookCreated, newBookEvent(EventBookCreated, created))

	return created, nil
}
