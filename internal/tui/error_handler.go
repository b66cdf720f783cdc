package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tview"
)

// LogLevel represents the severity of a status message
type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelWarning
	LogLevelError
	LogLevelSuccess
)

// ErrorHandler provides consistent error handling and user feedback through
// the status line. Backend error messages are shown verbatim.
type ErrorHandler struct {
	mu         sync.RWMutex
	app        *tview.Application
	statusView *tview.TextView
	logger     *log.Logger

	baseline    string
	progress    string
	statusTimer *time.Timer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(app *tview.Application, statusView *tview.TextView, logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{
		app:        app,
		statusView: statusView,
		logger:     logger,
	}
}

// SetBaseline sets the persistent status text shown when no message is active.
func (eh *ErrorHandler) SetBaseline(text string) {
	eh.mu.Lock()
	eh.baseline = text
	timerRunning := eh.statusTimer != nil
	progress := eh.progress
	eh.mu.Unlock()

	// A flash message or progress line owns the status view until it clears.
	if timerRunning || progress != "" {
		return
	}
	eh.setStatusText(text)
}

// ShowMessage displays a transient message to the user
func (eh *ErrorHandler) ShowMessage(ctx context.Context, msg string, level LogLevel) {
	if strings.TrimSpace(msg) == "" {
		return
	}

	formatted := eh.formatMessage(msg, level)

	if eh.logger != nil {
		eh.logger.Printf("%s: %s", eh.levelToString(level), msg)
	}

	eh.mu.Lock()
	if eh.statusTimer != nil {
		eh.statusTimer.Stop()
	}
	eh.statusTimer = time.AfterFunc(4*time.Second, func() {
		eh.mu.Lock()
		eh.statusTimer = nil
		text := eh.baseline
		if eh.progress != "" {
			text = eh.progress
		}
		eh.mu.Unlock()
		eh.setStatusText(text)
	})
	eh.mu.Unlock()

	eh.setStatusText(formatted)
}

// ShowError shows an error message
func (eh *ErrorHandler) ShowError(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelError)
}

// ShowWarning shows a warning message
func (eh *ErrorHandler) ShowWarning(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelWarning)
}

// ShowSuccess shows a success message
func (eh *ErrorHandler) ShowSuccess(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelSuccess)
}

// ShowInfo shows an informational message
func (eh *ErrorHandler) ShowInfo(ctx context.Context, msg string) {
	eh.ShowMessage(ctx, msg, LogLevelInfo)
}

// HandleError logs the technical error and shows a user-facing message
func (eh *ErrorHandler) HandleError(ctx context.Context, err error, userMsg string) {
	if err == nil {
		return
	}
	if eh.logger != nil {
		eh.logger.Printf("ERROR: %v", err)
	}
	if userMsg == "" {
		userMsg = "An error occurred"
	}
	eh.ShowMessage(ctx, userMsg, LogLevelError)
}

// ShowProgress shows a persistent progress message until ClearProgress
func (eh *ErrorHandler) ShowProgress(ctx context.Context, msg string) {
	formatted := eh.formatMessage(msg, LogLevelInfo)

	eh.mu.Lock()
	eh.progress = formatted
	eh.mu.Unlock()

	eh.setStatusText(formatted)
}

// ClearProgress clears the persistent progress message
func (eh *ErrorHandler) ClearProgress() {
	eh.mu.Lock()
	eh.progress = ""
	text := eh.baseline
	timerRunning := eh.statusTimer != nil
	eh.mu.Unlock()

	if timerRunning {
		return
	}
	eh.setStatusText(text)
}

func (eh *ErrorHandler) setStatusText(text string) {
	if eh.app == nil || eh.statusView == nil {
		return
	}
	eh.app.QueueUpdateDraw(func() {
		eh.statusView.SetText(text)
	})
}

func (eh *ErrorHandler) formatMessage(msg string, level LogLevel) string {
	switch level {
	case LogLevelError:
		return fmt.Sprintf("[red]✗ %s[-]", tview.Escape(msg))
	case LogLevelWarning:
		return fmt.Sprintf("[yellow]! %s[-]", tview.Escape(msg))
	case LogLevelSuccess:
		return fmt.Sprintf("[green]✓ %s[-]", tview.Escape(msg))
	default:
		return tview.Escape(msg)
	}
}

func (eh *ErrorHandler) levelToString(level LogLevel) string {
	switch level {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelSuccess:
		return "OK"
	default:
		return "INFO"
	}
}
