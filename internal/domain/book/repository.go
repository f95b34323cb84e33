package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 每个方法对应一次持久化调用,不跨实体、不开事务
type Repository interface {
	// List 按存储顺序(ID升序)返回全部图书,不分页
	List(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书,回填ID
	// ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// Update 覆盖图书字段,不存在返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除),不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// Search 按条件模糊查询,条件之间为AND关系
	Search(ctx context.Context, filter SearchFilter) ([]*Book, error)
}

// SearchFilter 搜索条件
// 空字符串表示不过滤该字段
type SearchFilter struct {
	Title    string // 书名包含
	Author   string // 作者包含
	Category string // 分类包含
}

// IsEmpty 是否没有任何过滤条件
func (f SearchFilter) IsEmpty() bool {
	return f.Title == "" && f.Author == "" && f.Category == ""
}
