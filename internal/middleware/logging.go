package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/cosmocash/internal/models"
)

// Viewpoint reports which roommate the household is currently viewed as.
type Viewpoint interface {
	CurrentUser() (models.Roommate, bool)
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, the acting roommate, duration, and any error
// codes/messages. The roommate is read before the call runs, so a
// SetCurrentUser call is logged under the previous user.
func LoggingInterceptor(view Viewpoint) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{"procedure", req.Spec().Procedure}
			if view != nil {
				if user, ok := view.CurrentUser(); ok {
					attrs = append(attrs, "current_user_id", user.ID)
				}
			}

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					slog.Warn("RPC error", append(attrs,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
					)...)
				} else {
					slog.Error("RPC error", append(attrs, "error", err)...)
				}
			} else {
				slog.Info("RPC ok", attrs...)
			}

			return resp, err
		}
	}
}
