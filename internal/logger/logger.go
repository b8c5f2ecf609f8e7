package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"carprice-system/internal/config"
)

// Logger оборачивает logrus и настраивается из конфигурации
type Logger struct {
	*logrus.Logger
}

// New создает логгер с уровнем, форматом и файлом вывода из конфигурации
func New(cfg *config.LoggerConfig) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, ferr := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr != nil {
			log.WithError(ferr).Warn("Failed to open log file, falling back to stdout")
		} else {
			output = io.MultiWriter(os.Stdout, file)
		}
	}
	log.SetOutput(output)

	return &Logger{Logger: log}
}
