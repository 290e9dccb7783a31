package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"hvac-load-api/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is a zap writer that forwards error-level entries to Sentry.
type SentryHook struct {
	appEnv     string
	appName    string
	reportable bool
	l          *logger.Logger
}

// NewSentryHook initialises the Sentry client. Entries are forwarded only when
// reportable is true, so local environments stay quiet.
func NewSentryHook(
	appEnv, appName string,
	reportable bool,
	maxErrorDepth int,
	isDebug bool,
	dsn string,
) *SentryHook {
	if dsn == "" {
		log.Println("Stacktracer init error: no DSN")
	}
	if maxErrorDepth == 0 {
		maxErrorDepth = _sentryMaxErrorDepth
	}
	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(
		sentry.ClientOptions{
			AttachStacktrace: true,
			Debug:            isDebug,
			Dsn:              dsn,
			Environment:      appEnv,
			MaxErrorDepth:    maxErrorDepth,
			ServerName:       appName,
			Transport:        sentryTransport,
		}); err != nil {

		log.Println("Stacktracer init error: ", err.Error())
	}
	return &SentryHook{
		appEnv:     appEnv,
		appName:    appName,
		reportable: reportable,
	}
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {

	switch zl {

	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal

	}

	return sentry.LevelDebug
}

func (h *SentryHook) Write(p []byte) (n int, err error) {

	if !h.reportable {
		return len(p), nil
	}

	type T struct {
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
		Kind       string `json:"kind"`
	}
	t := T{}
	if err := json.Unmarshal(p, &t); err != nil {
		h.logInternal(errors.Wrap(err, "[SentryHook] json.Unmarshal data"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil {
		h.logInternal(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}
	if len(t.Message) == 0 {
		return len(p), nil
	}

	switch level {
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		timestamp, _ := time.ParseInLocation("2006-01-02T15-04-05.000", t.Timestamp, time.UTC)

		event := sentry.NewEvent()
		event.Extra["AppName"] = h.appName
		event.Environment = h.appEnv
		event.Level = h.mapLevel(level)
		event.Timestamp = timestamp
		event.Message = t.Message
		event.Extra["Error"] = t.Error
		event.Extra["CallerFile"] = t.CallerFile
		event.Extra["CallerLine"] = t.CallerLine
		event.Extra["CallerFunc"] = t.CallerFunc
		event.Extra["Stack"] = t.Stack
		event.Extra["TimeStamp"] = t.Timestamp
		if t.Kind != "" {
			event.Tags["kind"] = t.Kind
		}
		event.Exception = append(event.Exception, sentry.Exception{
			Type:       t.Message,
			Value:      t.Error,
			Stacktrace: sentry.NewStacktrace(),
		})
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

func (h *SentryHook) logInternal(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

func (h *SentryHook) SetLogger(l *logger.Logger) {
	if l != nil {
		h.l = l
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}
