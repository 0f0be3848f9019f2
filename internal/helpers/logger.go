package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a logger for one component of the calculator.
// If the provided handler is nil, it creates a default stderr handler grouped
// under the component name, so stdout stays free for results.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - component: The top-level group (e.g., "safecalc")
//   - groupName: Optional additional group name within the component
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(handler slog.Handler, component string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil).WithGroup(component)
		slog.New(handler).Debug("Handler is nil, using the default logger configuration.")
	}

	var logger *slog.Logger
	if groupName != "" {
		logger = slog.New(handler.WithGroup(groupName))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
