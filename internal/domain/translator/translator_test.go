package translator

import (
	"context"
	"errors"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var okResult = model.Success(model.Empty{})

func TestEffectStrategy(t *testing.T) {
	backend := new(mocks.Backend)
	dev := &model.Device{UID: 3, Available: true, Zones: []string{"main"}}
	backend.On("SetState", mock.Anything, 3, "wave", "main", []string(nil), []interface{}{1}).Return(okResult)
	backend.On("SetState", mock.Anything, 3, "spectrum", "main", []string(nil), []interface{}{nil}).Return(okResult)

	s := &EffectStrategy{}
	assert.NoError(t, s.Apply(context.Background(), backend, dev, "main", "wave"))
	assert.NoError(t, s.Apply(context.Background(), backend, dev, "main", "spectrum"))
	backend.AssertExpectations(t)
}

func TestEffectStrategy_UnknownEffect(t *testing.T) {
	backend := new(mocks.Backend)
	dev := &model.Device{UID: 1, Zones: []string{"main"}}

	err := (&EffectStrategy{}).Apply(context.Background(), backend, dev, "main", "starlight")
	assert.True(t, errors.Is(err, model.ErrUnknownEffect))

	err = (&EffectStrategy{}).Apply(context.Background(), backend, dev, "main", 5)
	assert.True(t, errors.Is(err, model.ErrUnknownEffect))
	backend.AssertNotCalled(t, "SetState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBrightnessStrategy(t *testing.T) {
	backend := new(mocks.Backend)
	dev := &model.Device{UID: 0, Zones: []string{"logo"}}
	backend.On("SetState", mock.Anything, 0, "brightness", "logo", []string(nil), []interface{}{50}).Return(okResult)

	s := &BrightnessStrategy{Formula: "x"}
	assert.NoError(t, s.Apply(context.Background(), backend, dev, "logo", 50))
	backend.AssertExpectations(t)
}

func TestBrightnessStrategy_Formula(t *testing.T) {
	s := &BrightnessStrategy{Formula: "x / 2"}
	assert.Equal(t, 25.0, s.convert(50.0))
	assert.Equal(t, 25.0, s.convert(50))
	assert.Equal(t, "high", s.convert("high"))

	s = &BrightnessStrategy{}
	assert.Equal(t, 50, s.convert(50))
}

func TestBrightnessStrategy_Evaluate(t *testing.T) {
	s := &BrightnessStrategy{}
	assert.Equal(t, 10.0, s.evaluate("x * 2", 5))
	assert.Equal(t, 5.0, s.evaluate("x / 2", 10))
	assert.Equal(t, 20.0, s.evaluate("x * 2 + 10", 5))

	// Error path
	assert.Equal(t, 5.0, s.evaluate("invalid", 5.0))
}

func TestColourStrategy(t *testing.T) {
	backend := new(mocks.Backend)
	dev := &model.Device{UID: 2, Zones: []string{"scroll"}}
	backend.On("SetColours", mock.Anything, 2, "scroll", []string{"#00FF00"}).Return(okResult)

	s := &ColourStrategy{}
	assert.NoError(t, s.Apply(context.Background(), backend, dev, "scroll", "#00FF00"))
	assert.Error(t, s.Apply(context.Background(), backend, dev, "scroll", 12))
	backend.AssertExpectations(t)
}

func TestZoneState(t *testing.T) {
	st := ZoneState(100, "static", true)
	assert.True(t, st.On)
	assert.Equal(t, uint8(254), st.Bri)
	assert.Equal(t, "static", st.Effect)
	assert.True(t, st.Reachable)

	st = ZoneState(-5, "", false)
	assert.False(t, st.On)
	assert.Equal(t, uint8(0), st.Bri)

	assert.Equal(t, uint8(127), ZoneState(50, "", true).Bri)
}

func TestFactory(t *testing.T) {
	f := NewFactory("")
	s, found := f.GetStrategy(ApplyEffect)
	assert.True(t, found)
	assert.IsType(t, &EffectStrategy{}, s)
	s, _ = f.GetStrategy(ApplyBrightness)
	assert.IsType(t, &BrightnessStrategy{}, s)
	s, _ = f.GetStrategy(ApplyColour)
	assert.IsType(t, &ColourStrategy{}, s)
	_, found = f.GetStrategy("dpi")
	assert.False(t, found)
}
