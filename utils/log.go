package utils

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLogLevel = errors.New("unknown log level (known: debug, info, warn, error, fatal)")

const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
	FATAL = zapcore.FatalLevel
)

const (
	timeFormat = "15:04:05.000 02/01/2006 -07:00"
)

// LogLevel is a log level that can be changed while the process runs. Copies
// share the same underlying level.
type LogLevel struct {
	atomicLevel zap.AtomicLevel
}

// The following are necessary for Cobra and Viper, respectively, to unmarshal log level
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*LogLevel)(nil)
	_ encoding.TextUnmarshaler = (*LogLevel)(nil)
	_ zapcore.LevelEnabler     = (*LogLevel)(nil)
)

func NewLogLevel(level zapcore.Level) *LogLevel {
	return &LogLevel{atomicLevel: zap.NewAtomicLevelAt(level)}
}

func (l *LogLevel) init() {
	if l.atomicLevel == (zap.AtomicLevel{}) {
		l.atomicLevel = zap.NewAtomicLevelAt(INFO)
	}
}

func (l *LogLevel) Level() zapcore.Level {
	l.init()
	return l.atomicLevel.Level()
}

func (l *LogLevel) Enabled(level zapcore.Level) bool {
	return l.Level().Enabled(level)
}

func (l LogLevel) String() string {
	return l.Level().String()
}

func (l LogLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

func (l *LogLevel) Set(s string) error {
	var level zapcore.Level
	switch s {
	case "DEBUG", "debug":
		level = DEBUG
	case "INFO", "info":
		level = INFO
	case "WARN", "warn":
		level = WARN
	case "ERROR", "error":
		level = ERROR
	case "FATAL", "fatal":
		level = FATAL
	default:
		return ErrUnknownLogLevel
	}
	l.init()
	l.atomicLevel.SetLevel(level)
	return nil
}

func (l *LogLevel) Type() string {
	return "LogLevel"
}

func (l *LogLevel) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`"` + l.String() + `"`), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

// HTTPLogSettings reports the current level on GET and replaces it on PUT
// with the value of the level query parameter.
func HTTPLogSettings(w http.ResponseWriter, r *http.Request, logLevel *LogLevel) {
	switch r.Method {
	case http.MethodGet:
		fmt.Fprint(w, logLevel.String()+"\n")
	case http.MethodPut:
		levelStr := r.URL.Query().Get("level")
		if levelStr == "" {
			http.Error(w, "missing level query parameter", http.StatusBadRequest)
			return
		}

		if err := logLevel.Set(levelStr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, "Replaced log level with '", levelStr, "' successfully\n")
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type Logger interface {
	SimpleLogger
	pebble.Logger
}

type SimpleLogger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type ZapLogger struct {
	*zap.SugaredLogger
}

var (
	_ Logger = (*ZapLogger)(nil)
	_ Logger = (*noopLogger)(nil)
)

func NewZapLogger(logLevel *LogLevel, colour bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.Encoding = "console"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if colour {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format(timeFormat))
	}
	logLevel.init()
	config.Level = logLevel.atomicLevel

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{log.Sugar()}, nil
}

func NewZapLoggerWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{zap.New(core).Sugar()}
}

type noopLogger struct{}

func NewNopLogger() *noopLogger {
	return &noopLogger{}
}

func (l *noopLogger) Debugw(msg string, keysAndValues ...any)   {}
func (l *noopLogger) Infow(msg string, keysAndValues ...any)    {}
func (l *noopLogger) Warnw(msg string, keysAndValues ...any)    {}
func (l *noopLogger) Errorw(msg string, keysAndValues ...any)   {}
func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}
func (l *noopLogger) Fatalf(format string, args ...interface{}) {}
