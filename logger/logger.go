package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetupLogger 根据配置调整日志级别，需要在 SetupConfig 之后调用
func SetupLogger(debug bool) {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if debug || os.Getenv("ENV") == "DEBUG" {
		log.SetLevel(logrus.DebugLevel)
	}
}

func Debug(args ...interface{}) {
	log.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Infoln(args ...interface{}) {
	log.Infoln(args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warn(args ...interface{}) {
	log.Warn(args...)
}

func Error(args ...interface{}) {
	log.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}
