package translator

import (
	"rgb-controller/internal/domain/model"

	"github.com/amimof/huego"
)

// ZoneState describes a zone as a Hue light state. brightness is the daemon's
// 0-100 percentage.
func ZoneState(brightness float64, effect string, reachable bool) *model.ZoneState {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	return &huego.State{
		On:        brightness > 0,
		Bri:       uint8(brightness * 254 / 100),
		Effect:    effect,
		Reachable: reachable,
	}
}
