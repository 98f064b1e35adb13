package request

import (
	"context"

	"github.com/frankli0324/go-rawget/internal/model"
)

// Sequence runs r and collects every event it emits.
func Sequence(ctx context.Context, r *HTTPRequest) []model.RequestEvent {
	var events []model.RequestEvent
	r.Begin(ctx, func(ev model.RequestEvent) {
		events = append(events, ev)
	})
	return events
}
