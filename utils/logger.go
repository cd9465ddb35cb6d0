package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a no-op until InitLogger runs, so packages can log from tests.
var Logger = zap.NewNop()

func InitLogger(filename string, debug bool) {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	level := zap.InfoLevel
	sinks := []zapcore.Core{zapcore.NewCore(encoder, writer, level)}
	if debug {
		level = zap.DebugLevel
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		sinks = append(sinks, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level))
	}

	Logger = zap.New(zapcore.NewTee(sinks...), zap.AddCaller())
}
