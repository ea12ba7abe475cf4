package translator

import (
	"context"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

// Strategy applies one "apply to all" setting to a single zone of a device.
type Strategy interface {
	Apply(ctx context.Context, backend ports.BackendPort, device *model.Device, zone string, value interface{}) error
}

// ApplyType is the kind of setting broadcast to every device.
type ApplyType string

const (
	ApplyEffect     ApplyType = "effect"
	ApplyBrightness ApplyType = "brightness"
	ApplyColour     ApplyType = "colour"
)
