package logger

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var Log zerolog.Logger

// InitLogger wires the global logger to both stdout and a log file.
func InitLogger(logFile string) {
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		panic(err)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(err)
	}

	multi := zerolog.MultiLevelWriter(os.Stdout, file)
	Log = zerolog.New(multi).With().Timestamp().Logger()
}

// InitConsoleLogger is the stdout-only variant, used by the notifier and
// in environments without a writable log directory.
func InitConsoleLogger() {
	Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
