package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of an operation. Use as
//
//	defer obs.Time(ctx, "op")(&err)
//
// Request fields such as req_id come from the context logger.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	log := From(ctx)

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("op", name),
			zap.Duration("dur", time.Since(start)),
		}

		if errp != nil && *errp != nil {
			log.Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("operation done", fields...)
	}
}
