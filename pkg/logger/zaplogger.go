package logger

import (
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timestampLayout = "2006-01-02T15-04-05.000"

type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

type Option func(*options)

type options struct {
	level   zapcore.Level
	writers []io.Writer
}

// WithLevel sets the minimum level; unknown names fall back to debug.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			o.level = lvl
		}
	}
}

// WithWriters adds extra sinks next to the main writer, e.g. an error reporting hook.
func WithWriters(writers ...io.Writer) Option {
	return func(o *options) {
		o.writers = append(o.writers, writers...)
	}
}

func NewZapLogger(appName, appEnv string, w io.Writer, opts ...Option) *Logger {
	o := options{level: zapcore.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timestampLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if w == nil {
		w = os.Stdout
	}
	multiWriters := []zapcore.WriteSyncer{zapcore.AddSync(w)}
	for _, writer := range o.writers {
		multiWriters = append(multiWriters, zapcore.AddSync(writer))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(multiWriters...),
		o.level,
	)

	return &Logger{
		appEnv:  appEnv,
		appName: appName,
		l:       zap.New(core),
	}
}

// NewNop returns a logger that discards everything. Handy in tests.
func NewNop() *Logger {
	return &Logger{l: zap.NewNop()}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams(2)
	l.l.WithOptions(zap.Fields(fieldsOf(fields)...)).Error(
		err.Error(),
		zap.String("app_env", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("error", err.Error()),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
		zap.Stack("stack"),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.log(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.log(zapcore.FatalLevel, msg, fields)
}

func (l *Logger) log(level zapcore.Level, msg string, fields []map[string]any) {
	ce := l.l.WithOptions(zap.Fields(fieldsOf(fields)...)).Check(level, msg)
	if ce == nil {
		return
	}

	file, line, funcName := getRuntimeParams(3)
	ce.Write(
		zap.String("app_env", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	)
}

func fieldsOf(fields []map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields[0]))
	for k, v := range fields[0] {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

// getRuntimeParams reports the caller of the exported logging method.
func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}

	return file, line, runtime.FuncForPC(pc).Name()
}

func timeEncoder(layout string, location *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
