package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryStartup    Category = "startup"
	CategoryAPI        Category = "api"
	CategoryGeneration Category = "generation"
	CategorySession    Category = "session"
	CategoryWebSocket  Category = "websocket"
	CategoryScheduler  Category = "scheduler"
)

// AllCategories lists every category that owns a log file.
var AllCategories = []Category{
	CategoryStartup,
	CategoryAPI,
	CategoryGeneration,
	CategorySession,
	CategoryWebSocket,
	CategoryScheduler,
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const dateLayout = "2006-01-02"

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type categoryWriter struct {
	file *os.File
	day  string
}

// Logger writes JSON lines per category and day, optionally mirrored to the console.
type Logger struct {
	mu      sync.Mutex
	logDir  string
	writers map[Category]*categoryWriter
	console bool
	now     func() time.Time
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	l, err := NewLogger(logDir, console)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return nil
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:  logDir,
		writers: make(map[Category]*categoryWriter),
		console: console,
		now:     time.Now,
	}, nil
}

func fileName(category Category, day string) string {
	return fmt.Sprintf("%s_%s.log", category, day)
}

// writerFor returns the file for today's log of the category, rotating on day change.
// Caller must hold l.mu.
func (l *Logger) writerFor(category Category) (*os.File, error) {
	day := l.now().Format(dateLayout)
	if w, ok := l.writers[category]; ok {
		if w.day == day {
			return w.file, nil
		}
		w.file.Close()
		delete(l.writers, category)
	}

	path := filepath.Join(l.logDir, fileName(category, day))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = &categoryWriter{file: file, day: day}
	return file, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	entry.Timestamp = l.now()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	l.mu.Lock()
	writer, err := l.writerFor(entry.Category)
	if err != nil {
		fmt.Printf("Error getting log writer: %v\n", err)
	} else {
		fmt.Fprintln(writer, string(jsonData))
	}
	l.mu.Unlock()

	if l.console {
		printToConsole(entry)
	}
}

func printToConsole(entry LogEntry) {
	levelColors := map[Level]string{
		LevelDebug: "\033[36m",
		LevelInfo:  "\033[32m",
		LevelWarn:  "\033[33m",
		LevelError: "\033[31m",
	}
	reset := "\033[0m"

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]%s [%s] [%s] %s: %s",
		levelColors[entry.Level],
		entry.Level,
		reset,
		entry.Timestamp.Format("15:04:05.000"),
		entry.Category,
		entry.Action,
		entry.Message,
	)
	if entry.SessionID != "" {
		fmt.Fprintf(&b, " (session: %s)", entry.SessionID)
	}
	if entry.Duration != "" {
		fmt.Fprintf(&b, " (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, " ERROR: %s", entry.Error)
	}
	fmt.Println(b.String())

	if len(entry.Data) > 0 {
		dataJSON, _ := json.MarshalIndent(entry.Data, "    ", "  ")
		fmt.Printf("    Data: %s\n", string(dataJSON))
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, w := range l.writers {
		w.file.Close()
	}
	l.writers = make(map[Category]*categoryWriter)
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		l, err := NewLogger("logs", true)
		if err != nil {
			l = &Logger{logDir: os.TempDir(), writers: make(map[Category]*categoryWriter), console: true, now: time.Now}
		}
		defaultLogger = l
	}
	return defaultLogger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

// Scheduler logs scheduler events
func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

// SchedulerWarn logs scheduler warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// SchedulerError logs scheduler job failures
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryScheduler, action, message, err, data)
}

// WebSocket logs push channel events
func WebSocket(action, message string, data map[string]interface{}) {
	Info(CategoryWebSocket, action, message, data)
}

// WebSocketError logs push channel failures
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryWebSocket, action, message, err, data)
}

// Session logs form/display session events
func Session(sessionID, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:     LevelInfo,
		Category:  CategorySession,
		Action:    action,
		Message:   message,
		SessionID: sessionID,
		Data:      data,
	})
}

// Generation logs provider calls and their outcome
func Generation(action, message string, duration time.Duration, data map[string]interface{}) {
	entry := LogEntry{
		Level:    LevelInfo,
		Category: CategoryGeneration,
		Action:   action,
		Message:  message,
		Data:     data,
	}
	if duration > 0 {
		entry.Duration = duration.String()
	}
	Default().Log(entry)
}

// GenerationError logs failed generation attempts
func GenerationError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryGeneration, action, message, err, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: category, Action: action, Message: message, Data: data})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: category, Action: action, Message: message, Error: errString(err), Data: data})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelDebug, Category: category, Action: action, Message: message, Data: data})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: category, Action: action, Message: message, Data: data})
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // empty = all
	Level    Level    // empty = all
	Lines    int      // default 100, max 1000
	Search   string   // matched against message, action and error
}

// ReadLogs reads today's log entries from the default logger
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's entries, newest first.
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000
	}

	today := l.now().Format(dateLayout)
	categories := AllCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}
	search := strings.ToLower(opts.Search)

	var entries []LogEntry
	for _, cat := range categories {
		file, err := os.Open(filepath.Join(l.logDir, fileName(cat, today)))
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			var entry LogEntry
			if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
				continue
			}
			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(entry.Message), search) &&
				!strings.Contains(strings.ToLower(entry.Action), search) &&
				!strings.Contains(strings.ToLower(entry.Error), search) {
				continue
			}
			entries = append(entries, entry)
		}
		file.Close()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}
	return entries, nil
}

// ListLogFiles returns log file names of the default logger
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// PruneOlderThan removes category log files whose day is more than days old.
// Files that do not follow the <category>_<date>.log pattern are left alone.
func (l *Logger) PruneOlderThan(days int) (int, error) {
	files, err := l.ListLogFiles()
	if err != nil {
		return 0, err
	}

	cutoff := l.now().AddDate(0, 0, -days).Format(dateLayout)
	removed := 0
	for _, name := range files {
		base := strings.TrimSuffix(name, ".log")
		idx := strings.LastIndex(base, "_")
		if idx < 0 {
			continue
		}
		day := base[idx+1:]
		if _, err := time.Parse(dateLayout, day); err != nil {
			continue
		}
		if day >= cutoff {
			continue
		}
		if err := os.Remove(filepath.Join(l.logDir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Dir returns the log directory path
func (l *Logger) Dir() string {
	return l.logDir
}
