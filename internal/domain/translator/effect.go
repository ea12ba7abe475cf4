package translator

import (
	"context"
	"fmt"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

// DefaultEffectParams holds the parameter sent with each effect when it is
// applied to every device at once. nil means the effect takes no argument.
var DefaultEffectParams = map[string]interface{}{
	"spectrum":      nil,
	"wave":          1,
	"reactive":      2,
	"breath_single": nil,
	"static":        nil,
}

type EffectStrategy struct{}

func (s *EffectStrategy) Apply(ctx context.Context, backend ports.BackendPort, device *model.Device, zone string, value interface{}) error {
	effect, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %v", model.ErrUnknownEffect, value)
	}
	param, ok := DefaultEffectParams[effect]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownEffect, effect)
	}
	backend.SetState(ctx, device.UID, effect, zone, nil, []interface{}{param})
	return nil
}
