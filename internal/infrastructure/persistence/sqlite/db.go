package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/libros/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2 + SQLite驱动，数据库是本地文件
// 2. 配置连接池参数，SQLite同一时间只有一个写者，默认只开1个连接
// 3. database.log_sql开启时打印SQL
// 4. 启动时Ping并自动迁移libros表
// 返回的cleanup关闭底层连接，由wire在进程退出时调用
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	// 1. 确保数据库文件所在目录存在
	if cfg.Database.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Database.LogSQL {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(gormsqlite.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("path", cfg.Database.Path))

	// 6. 自动迁移表结构
	if err := autoMigrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info("表结构同步完成", zap.String("table", BookModel{}.TableName()))

	return db, cleanup, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&BookModel{})
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，domain/book/entity.go是领域实体，不依赖GORM
// 2. ISBN有唯一索引，是表上唯一的完整性约束
// 3. 物理删除，没有DeletedAt
type BookModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:255;not null"`
	Author    string    `gorm:"size:255;not null"`
	ISBN      string    `gorm:"column:isbn;uniqueIndex;size:13;not null"`
	Category  string    `gorm:"size:100;not null"`
	Status    string    `gorm:"size:50;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "libros"
}
