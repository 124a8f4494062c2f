package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity accepted by the provider.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// zapcore has no trace level; one step below debug stands in for it.
const traceLevel = zapcore.DebugLevel - 1

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelTrace:
		return traceLevel
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// String renders the severity label used in console output.
func (l Level) String() string {
	return levelLabel(l.zap())
}

func levelLabel(level zapcore.Level) string {
	if level < zapcore.DebugLevel {
		return "TRACE"
	}
	return level.CapitalString()
}

// Options configures the console logger provider.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type provider struct {
	core  zapcore.Core
	clock func() time.Time
}

// NewProvider builds a provider writing one line per entry through zap's
// console encoder: time, level, logger name, message, then the fields as a
// JSON object with sorted keys. Defaults are stdout, time.Now and DEBUG.
func NewProvider(opts Options) interfaces.LoggerProvider {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	clock := opts.TimeFunc
	if clock == nil {
		clock = time.Now
	}
	minLevel := LevelDebug
	if opts.MinLevel != nil {
		minLevel = *opts.MinLevel
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(time.RFC3339Nano))
		},
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(levelLabel(level))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})

	return &provider{
		core:  zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(writer)), minLevel.zap()),
		clock: clock,
	}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{provider: p, name: name}
}

type consoleLogger struct {
	provider *provider
	name     string
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(traceLevel, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(zapcore.DebugLevel, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(zapcore.InfoLevel, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(zapcore.WarnLevel, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(zapcore.ErrorLevel, msg, args) }

// Fatal writes at FATAL without terminating the process.
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(zapcore.FatalLevel, msg, args) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	mergeInto(merged, l.fields)
	mergeInto(merged, fields)
	return &consoleLogger{provider: l.provider, name: l.name, fields: merged, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &consoleLogger{provider: l.provider, name: l.name, fields: l.fields, ctx: ctx}
}

func (l *consoleLogger) log(level zapcore.Level, msg string, args []any) {
	if l.provider == nil {
		return
	}
	entry := zapcore.Entry{
		Level:      level,
		Time:       l.provider.clock(),
		LoggerName: l.name,
		Message:    msg,
	}
	// Checking the core directly keeps FATAL from exiting.
	checked := l.provider.core.Check(entry, nil)
	if checked == nil {
		return
	}

	merged := map[string]any{}
	mergeInto(merged, l.fields)
	mergeInto(merged, logging.ContextFields(l.ctx))
	mergeInto(merged, pairs(args))

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, merged[key]))
	}
	checked.Write(fields...)
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		dst[key] = value
	}
}

// pairs reads alternating key/value arguments. Values without a usable
// string key are kept under a positional name.
func pairs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			out[positional(i/2)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = positional(i / 2)
		}
		out[key] = args[i+1]
	}
	return out
}

func positional(index int) string {
	return fmt.Sprintf("field_%d", index)
}
