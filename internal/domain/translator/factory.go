package translator

type Factory struct {
	strategies map[ApplyType]Strategy
}

// NewFactory builds the strategies. brightnessFormula maps the view's
// brightness value (variable x) to the daemon's; empty means unchanged.
func NewFactory(brightnessFormula string) *Factory {
	return &Factory{
		strategies: map[ApplyType]Strategy{
			ApplyEffect:     &EffectStrategy{},
			ApplyBrightness: &BrightnessStrategy{Formula: brightnessFormula},
			ApplyColour:     &ColourStrategy{},
		},
	}
}

func (f *Factory) GetStrategy(t ApplyType) (Strategy, bool) {
	s, ok := f.strategies[t]
	return s, ok
}
