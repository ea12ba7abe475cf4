package ports

import (
	"context"
	"rgb-controller/internal/domain/model"
)

// Dispatcher is the single entry point the view uses to reach the controller.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, payload model.Payload)
}
