package gpu

import (
	"log/slog"

	"github.com/gogpu/compositor"
)

// slogger returns the module logger. All logging in internal/gpu goes
// through this function so it follows compositor.SetLogger.
func slogger() *slog.Logger { return compositor.Logger() }
