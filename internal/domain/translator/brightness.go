package translator

import (
	"context"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"

	"github.com/Knetic/govaluate"
)

const requestBrightness = "brightness"

type BrightnessStrategy struct {
	Formula string
}

func (s *BrightnessStrategy) Apply(ctx context.Context, backend ports.BackendPort, device *model.Device, zone string, value interface{}) error {
	backend.SetState(ctx, device.UID, requestBrightness, zone, nil, []interface{}{s.convert(value)})
	return nil
}

// convert passes value through the formula. Non-numeric values and formulas
// that fail to evaluate leave the value untouched.
func (s *BrightnessStrategy) convert(value interface{}) interface{} {
	if s.Formula == "" || s.Formula == "x" {
		return value
	}
	var x float64
	switch v := value.(type) {
	case float64:
		x = v
	case int:
		x = float64(v)
	default:
		return value
	}
	return s.evaluate(s.Formula, x)
}

// evaluate handles simple formulas like "x * 2.55" or "x / 2 + 10"
func (s *BrightnessStrategy) evaluate(formula string, x float64) float64 {
	expression, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return x
	}
	parameters := make(map[string]interface{}, 1)
	parameters["x"] = x

	result, err := expression.Evaluate(parameters)
	if err != nil {
		return x
	}

	if val, ok := result.(float64); ok {
		return val
	}
	return x
}
