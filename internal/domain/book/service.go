package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 写操作前执行字段规则校验(Validate)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// ListBooks 全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// CreateBook 新增图书
	// 业务规则:
	// - 字段必须通过Validate
	// - ISBN不能重复(由数据库唯一索引保证)
	CreateBook(ctx context.Context, book *Book) (*Book, error)

	// UpdateBook 用changes覆盖ID为id的图书
	UpdateBook(ctx context.Context, id uint, changes *Book) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// SearchBooks 按书名/作者/分类模糊查询
	SearchBooks(ctx context.Context, filter SearchFilter) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	// 1. 字段规则校验
	if err := book.Validate(); err != nil {
		return nil, err
	}

	// 2. 持久化(ISBN重复由仓储转换为ErrISBNDuplicate)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *service) UpdateBook(ctx context.Context, id uint, changes *Book) (*Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}

	// 1. 字段规则校验
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	// 2. 路径中的ID优先,忽略请求体中的ID
	changes.ID = id

	// 3. 持久化,仓储负责回填更新后的记录
	if err := s.repo.Update(ctx, changes); err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SearchBooks(ctx context.Context, filter SearchFilter) ([]*Book, error) {
	if filter.IsEmpty() {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, filter)
}
