package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/interface/http/handler"
	"github.com/xiebiao/libros/internal/interface/http/middleware"
	"github.com/xiebiao/libros/pkg/validator"
)

// NewRouter 创建并配置Gin引擎
// 中间件顺序: Recovery → CORS → Tracing → Logger → Metrics
// Tracing在Logger之前,访问日志才能带上trace_id
func NewRouter(cfg *config.Config, log *zap.Logger, tp trace.TracerProvider, bookHandler *handler.BookHandler) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// 自定义校验tag
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			log.Error("panic recovered",
				zap.Any("panic", recovered),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		}),
		cors.New(corsConfig(cfg.CORS)),
		middleware.Tracing(tp),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档,生产环境不暴露
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 图书路由
	// 静态路径/buscar优先于参数路径/:id
	libros := r.Group("/libros")
	{
		libros.GET("", bookHandler.ListBooks)
		libros.GET("/buscar", bookHandler.SearchBooks)
		libros.GET("/:id", bookHandler.GetBook)
		libros.POST("", bookHandler.CreateBook)
		libros.PUT("/:id", bookHandler.UpdateBook)
		libros.DELETE("/:id", bookHandler.DeleteBook)
	}

	return r, nil
}

func registerValidators() error {
	if err := validator.Register(); err != nil {
		return err
	}
	v, err := validator.Engine()
	if err != nil {
		return err
	}
	return validator.RegisterEnum(v, "bookcategory", book.Categories)
}

// corsConfig 配置中的"*"转换为AllowAllOrigins
func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	}
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = cfg.AllowOrigins
	return cc
}
