package observe

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
	_logTimestampLayout                       = "2006-01-02T15-04-05.000"
)

// SentryHook is an io.Writer for the zap core: it receives every encoded log line and
// forwards error and fatal entries to Sentry.
type SentryHook struct {
	appEnv  string
	appName string
	capture func(*sentry.Event)
}

// reportedEnvs are the environments whose errors reach Sentry.
var reportedEnvs = map[string]bool{"prod": true, "production": true, "dev": true}

// logLine mirrors the JSON written by pkg/logger.
type logLine struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppEnv     string `json:"app_env"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func NewSentryHook(appEnv, appName, dsn string, isDebug bool) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry: no DSN configured")
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	}); err != nil {
		return nil, errors.Wrap(err, "sentry: init")
	}

	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
		capture: func(e *sentry.Event) { sentry.CaptureEvent(e) },
	}, nil
}

func (h *SentryHook) Write(p []byte) (int, error) {
	if !reportedEnvs[h.appEnv] {
		return len(p), nil
	}

	var line logLine
	if err := json.Unmarshal(p, &line); err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] decode log line").Error())
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(line.Level)
	if err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] parse zap level").Error())
		return len(p), nil
	}

	if level < zapcore.ErrorLevel || line.Message == "" {
		return len(p), nil
	}

	h.capture(h.event(level, line))

	return len(p), nil
}

func (h *SentryHook) event(level zapcore.Level, line logLine) *sentry.Event {
	timestamp, err := time.ParseInLocation(_logTimestampLayout, line.Timestamp, time.UTC)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.Level = mapLevel(level)
	event.Timestamp = timestamp
	event.Message = line.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = line.Error
	event.Extra["CallerFile"] = line.CallerFile
	event.Extra["CallerLine"] = line.CallerLine
	event.Extra["CallerFunc"] = line.CallerFunc
	event.Extra["Stack"] = line.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  line.Message,
		Value: line.Error,
	})

	return event
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}

func mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}
