package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/libros/docs"
	"github.com/xiebiao/libros/internal/infrastructure/config"
)

// main 主程序入口
//
// @title        Libros API
// @version      1.0
// @description  图书目录服务:图书的增删改查与搜索
// @host         localhost:3000
// @BasePath     /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 依赖注入(wire生成)
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	// 3. 启动服务
	if err := run(app); err != nil {
		app.Log.Error("服务异常退出", zap.Error(err))
	}
}

// run 启动HTTP服务并等待退出信号
// 收到SIGINT/SIGTERM后停止接受新请求,在shutdown_timeout内等待现有请求完成
func run(app *App) error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Info("服务启动成功",
			zap.String("addr", app.Server.Addr),
			zap.String("mode", app.Config.Server.Mode),
		)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		app.Log.Info("收到关闭信号,开始优雅关闭", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		return err
	}

	app.Log.Info("服务已安全关闭")
	return nil
}
