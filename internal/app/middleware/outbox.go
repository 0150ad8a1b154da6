package middleware

import (
	"context"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/outbox"
)

// OutboxFlush flushes the outbox after a successful command. The current
// stores persist on Add and treat Flush as a no-op; the hook exists for
// buffering implementations.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
