package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "abastecimentos-debug.log"

// DebugLogger logs view state, keystrokes and events. A nil *DebugLogger
// discards everything.
type DebugLogger struct {
	logger *zap.Logger
}

// NewDebugLogger wraps logger. A nil logger disables debug logging.
func NewDebugLogger(logger *zap.Logger) *DebugLogger {
	if logger == nil {
		return nil
	}
	return &DebugLogger{logger: logger}
}

func (d *DebugLogger) log(event string, fields ...zap.Field) {
	if d == nil {
		return
	}
	d.logger.Debug(event, fields...)
}

// LogKeyPress logs a key press event.
func (d *DebugLogger) LogKeyPress(msg tea.KeyMsg, mode Mode) {
	d.log("KEY_PRESS",
		zap.String("key", msg.String()),
		zap.String("mode", modeString(mode)),
	)
}

// LogModeChange logs a mode change.
func (d *DebugLogger) LogModeChange(from, to Mode, reason string) {
	d.log("MODE_CHANGE",
		zap.String("from", modeString(from)),
		zap.String("to", modeString(to)),
		zap.String("reason", reason),
	)
}

// LogFetch logs an issued history request.
func (d *DebugLogger) LogFetch(reqID uint64, params supply.Params) {
	d.log("FETCH",
		zap.Uint64("req_id", reqID),
		zap.String("query", params.Values().Encode()),
	)
}

// LogFetchResult logs a history response, including discarded ones.
func (d *DebugLogger) LogFetchResult(reqID, latest uint64, items int, err error) {
	fields := []zap.Field{
		zap.Uint64("req_id", reqID),
		zap.Uint64("latest", latest),
		zap.Int("items", items),
		zap.Bool("stale", reqID != latest),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	d.log("FETCH_RESULT", fields...)
}

// LogSearch logs an autocomplete lookup and whether it was still current.
func (d *DebugLogger) LogSearch(event string, seq, latest uint64, query string, err error) {
	fields := []zap.Field{
		zap.Uint64("seq", seq),
		zap.Uint64("latest", latest),
		zap.String("query", query),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	d.log(event, fields...)
}

// LogError logs an error with context.
func (d *DebugLogger) LogError(context string, err error) {
	d.log("ERROR", zap.String("context", context), zap.Error(err))
}

func modeString(m Mode) string {
	switch m {
	case ModeList:
		return "LIST"
	case ModeFilters:
		return "FILTERS"
	case ModeModal:
		return "MODAL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", m)
	}
}
