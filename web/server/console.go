package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "progress"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger. Carriage-return progress lines are tagged
// "progress" so the browser can overwrite them in place.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	level := "info"
	if strings.HasPrefix(message, "\r") {
		level = "progress"
		message = strings.TrimPrefix(message, "\r")
	}

	// Server log gets progress too, one line per message
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		log.Printf("[%s] %s", wl.renderID, trimmed)
	}

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}
