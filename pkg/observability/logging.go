package observability

import (
	"context"
	"log/slog"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// LoggingHooks logs every lifecycle event at Info, except intent resolution
// which is logged at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "turn_start",
				"session_id", e.SessionID,
				"state", e.State,
			)
		},
		OnIntentResolved: func(ctx context.Context, e *domain.IntentEvent) {
			logger.DebugContext(ctx, "intent_resolved",
				"session_id", e.SessionID,
				"resolved", e.Resolved,
				"refined", e.Refined,
				"effective", e.Effective,
				"flow", e.Flow,
				"query", e.Query,
			)
		},
		OnRouteDenied: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "route_denied",
				"session_id", e.SessionID,
				"state", e.State,
				"intent", e.Intent,
			)
		},
		OnCommandApplied: func(ctx context.Context, e *domain.CommandEvent) {
			logger.InfoContext(ctx, "command_applied",
				"session_id", e.SessionID,
				"command", e.Command,
				"applied", e.Applied,
			)
		},
		OnTurnEnd: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "turn_end",
				"session_id", e.SessionID,
				"state", e.State,
				"next_state", e.NextState,
				"intent", e.Intent,
				"handler", e.Handler,
				"response_key", e.ResponseKey,
				"duration", e.Duration,
			)
		},
	}
}
