//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/logger"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/internal/interface/http/handler"
	"github.com/xiebiao/libros/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：日志、数据库连接、缓存、消息、链路追踪
var infrastructureSet = wire.NewSet(
	logger.New,
	sqlite.NewDB,
	provideBookCache,
	provideEventPublisher,
	provideTracing,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	sqlite.NewBookRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层依赖
// 每个用例对应一个接口
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewSearchBooksUseCase,
)

// interfaceSet HTTP层依赖
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.NewRouter,
	provideServer,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序释放资源(追踪、MQ、Redis、数据库、日志)
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
