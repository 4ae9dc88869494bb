package main

import (
	"context"
	"time"

	"github.com/RodolfoBonis/spooliq-iamops/internal/logging"
)

// withCmdRunLogger implements the Span pattern for CLI command logging.
// It emits a start log line and returns a context with logger attributes
// attached, plus a cleanup function to emit the success or failure line.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "provision", realm)
//	defer func() { cleanup(err) }()
//
// Log message format:
// - Start:   CMD:<operation>/S (with realm in logger attributes)
// - Success: CMD:<operation>/EOK (with err, elapsed in logger attributes)
// - Failure: CMD:<operation>/EFAIL (with err, elapsed in logger attributes)
//
// All logs use INFO level (mechanical recording).
func withCmdRunLogger(ctx context.Context, operation, realm string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("realm", realm)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "CMD:"+operation+"/S")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		var msg, errStr string
		if err == nil {
			msg = "CMD:" + operation + "/EOK"
		} else {
			msg = "CMD:" + operation + "/EFAIL"
			errMsg := err.Error()
			if len(errMsg) > 32 {
				errStr = errMsg[:32] + "..."
			} else {
				errStr = errMsg
			}
		}
		logger.Info(ctx, msg, "err", errStr, "elapsed", elapsed)
	}

	return ctx, cleanup
}
