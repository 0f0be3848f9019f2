package keypad

import (
	"context"
	"log/slog"
)

// LoggingMiddleware logs every key press before passing it to next.
func LoggingMiddleware(logger *slog.Logger, next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, key Key, source Source) {
		logger.InfoContext(ctx, "key pressed",
			"key", key.Text,
			"action", key.Action.String(),
			"source", string(source),
		)
		next.HandleKey(ctx, key, source)
	})
}
