package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[level]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service,omitempty"`
	Action    string         `json:"action,omitempty"`
	Message   string         `json:"message"`
	Hostname  string         `json:"hostname"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Error     *ErrorEntry    `json:"error,omitempty"`
}

type ErrorEntry struct {
	Msg   string `json:"msg"`
	Stack string `json:"stack"`
}

// Logger writes one JSON entry per line to stdout. It is a value type;
// With and Action return derived copies so a handler can tag its own
// service/action/request_id without touching the parent.
type Logger struct {
	service   string
	action    string
	requestID string
	hostname  string
	minLevel  level
	fields    map[string]any
}

func New(minLevel string) (Logger, error) {
	hostname, _ := os.Hostname()

	l := Logger{hostname: hostname}
	switch strings.ToUpper(minLevel) {
	case "DEBUG":
		l.minLevel = levelDebug
	case "INFO", "":
		l.minLevel = levelInfo
	case "WARN":
		l.minLevel = levelWarn
	case "ERROR":
		l.minLevel = levelError
	default:
		return Logger{}, fmt.Errorf("unknown log level: %q", minLevel)
	}
	return l, nil
}

// Action returns a copy of the logger tagged with the given action name.
func (l Logger) Action(action string) Logger {
	l.action = action
	return l
}

// With attaches key/value pairs to every entry the derived logger writes.
// The keys "service" and "request_id" populate the corresponding top-level
// entry fields instead of the details map.
func (l Logger) With(kv ...any) Logger {
	fields := make(map[string]any, len(l.fields)+len(kv)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		switch key {
		case "service":
			l.service = fmt.Sprint(kv[i+1])
		case "request_id":
			l.requestID = fmt.Sprint(kv[i+1])
		default:
			fields[key] = kv[i+1]
		}
	}
	l.fields = fields
	return l
}

func (l Logger) Debug(message string, kv ...any) {
	l.log(levelDebug, message, nil, kv)
}

func (l Logger) Info(message string, kv ...any) {
	l.log(levelInfo, message, nil, kv)
}

func (l Logger) Warn(message string, kv ...any) {
	l.log(levelWarn, message, nil, kv)
}

func (l Logger) Error(message string, err error, kv ...any) {
	var entry *ErrorEntry
	if err != nil {
		buf := make([]byte, 1024)
		n := runtime.Stack(buf, false)
		entry = &ErrorEntry{Msg: err.Error(), Stack: string(buf[:n])}
	}
	l.log(levelError, message, entry, kv)
}

func (l Logger) log(lvl level, message string, errEntry *ErrorEntry, kv []any) {
	if lvl < l.minLevel {
		return
	}

	details := make(map[string]any, len(l.fields)+len(kv)/2)
	for k, v := range l.fields {
		details[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		details[fmt.Sprint(kv[i])] = kv[i+1]
	}
	if len(details) == 0 {
		details = nil
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     levelNames[lvl],
		Service:   l.service,
		Action:    l.action,
		Message:   message,
		Hostname:  l.hostname,
		RequestID: l.requestID,
		Details:   details,
		Error:     errEntry,
	}

	jsonData, _ := json.Marshal(entry)
	fmt.Println(string(jsonData))
}
