package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l *zap.Logger = zap.NewNop()

// Init 按运行模式初始化全局 logger（debug 用开发配置，其余用生产配置）
func Init(mode string) error {
	var (
		lg  *zap.Logger
		err error
	)
	if mode == "debug" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		lg, err = cfg.Build()
	} else {
		lg, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	l = lg
	return nil
}

// L 返回全局 logger
func L() *zap.Logger { return l }

// S 返回全局 sugared logger
func S() *zap.SugaredLogger { return l.Sugar() }

// Sync flush 缓冲日志，进程退出前调用
func Sync() { _ = l.Sync() }
