package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/julianstephens/nahar/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance. Nil until Init.
	Logger *log.Logger

	file *lumberjack.Logger
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Console mirrors records to Stderr. The TUI leaves this off so log
	// lines never land on the alternate screen.
	Console bool
	// Stderr overrides os.Stderr for the console mirror.
	Stderr io.Writer
}

// Init points the global logger at <ConfigDir>/logs/nahar.log.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	if file != nil {
		_ = file.Close()
	}
	file = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = file
	if cfg.Console {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = io.MultiWriter(stderr, file)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Path is the active log file, or "" before Init.
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and releases the log file.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	Logger = nil
	return err
}

// Component returns a logger whose records are prefixed with name, e.g.
// "nahar/sweeper". Before Init it discards everything.
func Component(name string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.WithPrefix(constants.AppName + "/" + name)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	os.Exit(1)
}
