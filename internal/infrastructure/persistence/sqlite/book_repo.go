package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libros/internal/domain/book"
	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// bookRepository 图书仓储实现(SQLite)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// List 全部图书,按ID升序
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntities(models), nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	return toBookEntity(&model), nil
}

// Create 创建图书
// b.ID非零时按指定ID插入,冲突返回ErrDuplicateEntry
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err)
	}

	// 3. 回填自增ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// Update 覆盖图书字段
// 更新后重新读取一次,保证返回的是库中的实际值
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	updates := map[string]interface{}{
		"title":    b.Title,
		"author":   b.Author,
		"isbn":     b.ISBN,
		"category": b.Category,
		"status":   b.Status,
	}
	if !b.CreatedAt.IsZero() {
		updates["created_at"] = b.CreatedAt
	}

	result := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(updates)

	if result.Error != nil {
		return translateWriteError(result.Error)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	updated, err := r.FindByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *updated

	return nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Search 按书名/作者/分类模糊查询
// 每个非空条件生成一个LIKE子句,条件之间为AND
// SQLite的LIKE对ASCII字母不区分大小写
func (r *bookRepository) Search(ctx context.Context, filter book.SearchFilter) ([]*book.Book, error) {
	query := r.db.WithContext(ctx).Model(&BookModel{})

	if filter.Title != "" {
		query = query.Where(`title LIKE ? ESCAPE '\'`, likePattern(filter.Title))
	}
	if filter.Author != "" {
		query = query.Where(`author LIKE ? ESCAPE '\'`, likePattern(filter.Author))
	}
	if filter.Category != "" {
		query = query.Where(`category LIKE ? ESCAPE '\'`, likePattern(filter.Category))
	}

	var models []BookModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	return toBookEntities(models), nil
}

// translateWriteError 写入错误 → 业务错误
func translateWriteError(err error) error {
	switch {
	case isDuplicateError(err) && isISBNConflict(err):
		return book.ErrISBNDuplicate.WithCause(err)
	case isDuplicateError(err):
		return book.ErrDuplicateEntry.WithCause(err)
	case isConstraintError(err):
		return book.ErrConstraint.WithCause(err)
	default:
		return apperrors.ErrDatabaseError.WithCause(err)
	}
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Category:  b.Category,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		ISBN:      model.ISBN,
		Category:  model.Category,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toBookEntities 空结果返回空切片而不是nil,序列化为[]
func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
