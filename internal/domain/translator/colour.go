package translator

import (
	"context"
	"fmt"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

type ColourStrategy struct{}

func (s *ColourStrategy) Apply(ctx context.Context, backend ports.BackendPort, device *model.Device, zone string, value interface{}) error {
	hex, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: colour must be a hex string, got %T", model.ErrInvalidField, value)
	}
	backend.SetColours(ctx, device.UID, zone, []string{hex})
	return nil
}
