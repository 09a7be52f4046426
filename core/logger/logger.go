package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// sink is one destination for log lines. Terminal sinks get ANSI colors,
// file sinks get the same line without escapes.
type sink struct {
	w     io.Writer
	color bool
}

type ColoredLogger struct {
	verbose    bool
	timestamps bool
	mu         sync.RWMutex
	sinks      map[LogLevel][]sink
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = newColoredLogger(os.Stdout)
}

func newColoredLogger(w io.Writer) *ColoredLogger {
	cl := &ColoredLogger{
		sinks: make(map[LogLevel][]sink),
	}
	for level := DEBUG; level <= FATAL; level++ {
		cl.sinks[level] = []sink{{w: w, color: true}}
	}
	return cl
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

// SetTimestamps toggles the "[06-01-02 15:04:05] LEVEL" prefix. Off by default.
func SetTimestamps(on bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.timestamps = on
}

func SetWriter(level LogLevel, writer io.Writer, color bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = []sink{{w: writer, color: color}}
}

func SetWriterForAll(writer io.Writer, color bool) {
	for level := DEBUG; level <= FATAL; level++ {
		SetWriter(level, writer, color)
	}
}

func AddWriter(level LogLevel, writer io.Writer, color bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.sinks[level] = append(globalLogger.sinks[level], sink{w: writer, color: color})
}

func AddWriterForAll(writer io.Writer, color bool) {
	for level := DEBUG; level <= FATAL; level++ {
		AddWriter(level, writer, color)
	}
}

// OpenLogFile appends every level to path, uncolored. The returned closer
// must be called once logging is done.
func OpenLogFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	AddWriterForAll(f, false)
	return f, nil
}

func getColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	case FATAL:
		return ColorPurple
	default:
		return ColorWhite
	}
}

// Colorize wraps s in the given ANSI color. Pass the uncolored text to
// InfoColor instead when it may reach a log file.
func Colorize(color, s string) string {
	return color + s + ColorReset
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string, color bool) string {
	if !cl.timestamps {
		return message
	}
	timestamp := time.Now().Format("06-01-02 15:04:05")
	if !color {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}
	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s",
		ColorGray, timestamp, ColorReset,
		getColor(level), level.String(), ColorReset,
		message,
	)
}

func (cl *ColoredLogger) write(level LogLevel, colored, plain string) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}
	sinks := cl.sinks[level]
	cl.mu.RUnlock()

	for _, s := range sinks {
		line := plain
		if s.color {
			line = colored
		}
		fmt.Fprintln(s.w, cl.formatMessage(level, line, s.color))
	}

	if level == FATAL {
		os.Exit(1)
	}
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	cl.write(level, message, message)
}

// logColored writes message in color to terminal sinks and plain elsewhere.
func (cl *ColoredLogger) logColored(level LogLevel, color, message string) {
	cl.write(level, Colorize(color, message), message)
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	globalLogger.log(FATAL, format, args...)
}

// Progress prints a "=> msg" step line.
func Progress(format string, args ...interface{}) {
	globalLogger.log(INFO, "=> "+format, args...)
}

// InfoColor prints an INFO line that is colored on terminals.
func InfoColor(color, format string, args ...interface{}) {
	globalLogger.logColored(INFO, color, fmt.Sprintf(format, args...))
}

func Success(format string, args ...interface{}) {
	globalLogger.logColored(INFO, ColorCyan, fmt.Sprintf(format, args...))
}

