package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/libros/internal/infrastructure/config"
)

// New 根据配置创建结构化日志
// 设计说明：
// 1. format=json输出生产格式，console输出开发格式
// 2. 所有日志附带service字段
// 3. 创建后替换zap全局Logger，供pkg/response等无法注入的地方使用
func New(cfg *config.Config) (*zap.Logger, func(), error) {
	var zc zap.Config
	if cfg.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.MessageKey = "message"
	zc.DisableCaller = !cfg.Log.EnableCaller

	zc.InitialFields = map[string]interface{}{
		"service": cfg.Server.Name,
	}

	log, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("创建日志失败: %w", err)
	}

	restore := zap.ReplaceGlobals(log)
	cleanup := func() {
		_ = log.Sync()
		restore()
	}

	return log, cleanup, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("无效的日志级别: %s", s)
	}
}
