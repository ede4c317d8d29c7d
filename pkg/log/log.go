package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Logger is a named logger. Every line carries a "[name>]" prefix and a
// service field.
type Logger struct {
	name string
	zl   zerolog.Logger
}

// switchWriter lets SetOutput retarget loggers that were already created.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

var (
	globalDebug  atomic.Bool
	jsonOutput   atomic.Bool
	serviceDebug sync.Map // map[string]*atomic.Bool
	loggers      sync.Map // map[string]*Logger

	output = &switchWriter{w: os.Stderr}

	console = zerolog.ConsoleWriter{
		Out:        output,
		NoColor:    true,
		TimeFormat: "2006/01/02 15:04:05.000000",
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprint(i))
		},
		FieldsExclude: []string{"service"},
	}
)

// levelWriter picks console or JSON output per write so SetJSON applies to
// existing loggers too.
type levelWriter struct{}

func (levelWriter) Write(p []byte) (int, error) {
	if jsonOutput.Load() {
		return output.Write(p)
	}
	return console.Write(p)
}

// ForService returns (and memoizes) a named logger for the given service.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	zl := zerolog.New(levelWriter{}).
		Level(zerolog.TraceLevel).
		With().
		Timestamp().
		Str("service", name).
		Logger()
	actual, _ := loggers.LoadOrStore(name, &Logger{name: name, zl: zl})
	return actual.(*Logger)
}

// SetGlobalDebug enables or disables debug logging for every service.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// GlobalDebug returns whether global debug logging is enabled.
func GlobalDebug() bool {
	return globalDebug.Load()
}

// SetJSON switches all loggers between console lines and JSON objects.
func SetJSON(enabled bool) {
	jsonOutput.Store(enabled)
}

// EnableDebugFor enables debug logging for a single service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	val, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	val.(*atomic.Bool).Store(true)
}

// DebugEnabledFor reports whether debug is enabled globally or for name.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if val, ok := serviceDebug.Load(name); ok {
		return val.(*atomic.Bool).Load()
	}
	return false
}

// SetOutput sets the destination for all loggers, existing ones included.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	output.set(w)
}

func (l *Logger) prefix() string {
	return "[" + l.name + ">]"
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msg(l.prefix() + " " + fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msg(l.prefix() + " " + fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msg(l.prefix() + " " + fmt.Sprintf(format, args...))
}

// Debugf logs only when debug is enabled globally or for this service.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.zl.Debug().Msg(l.prefix() + " " + fmt.Sprintf(format, args...))
}

// Level names as printed in console output.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)
