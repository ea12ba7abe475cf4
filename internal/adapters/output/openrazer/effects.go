package openrazer

import (
	"fmt"
	"math"
	"rgb-controller/internal/domain/model"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// zoneAddr describes how a lighting zone is addressed on the bus.
type zoneAddr struct {
	iface           string
	prefix          string // method prefix, e.g. "Logo" in setLogoStatic
	brightnessIface string
}

var zones = map[string]zoneAddr{
	model.ZoneMain:      {iface: ifaceChroma, prefix: "", brightnessIface: ifaceBright},
	model.ZoneLogo:      {iface: ifaceLogo, prefix: "Logo", brightnessIface: ifaceLogo},
	model.ZoneScroll:    {iface: ifaceScroll, prefix: "Scroll", brightnessIface: ifaceScroll},
	model.ZoneBacklight: {iface: ifaceBacklight, prefix: "Backlight", brightnessIface: ifaceBacklight},
}

// zoneOrder is the order zones are reported in.
var zoneOrder = []string{model.ZoneMain, model.ZoneLogo, model.ZoneScroll, model.ZoneBacklight}

func (z zoneAddr) method(name string) string {
	return z.iface + ".set" + z.prefix + name
}

func (z zoneAddr) setBrightness() string {
	return z.brightnessIface + ".set" + z.prefix + "Brightness"
}

func (z zoneAddr) getBrightness() string {
	return z.brightnessIface + ".get" + z.prefix + "Brightness"
}

// defaultColour is used by effects that need a colour when none was given
// and none was remembered for the zone.
const defaultColour = "#00FF00"

// call is a fully resolved method call for one request.
type call struct {
	method string
	args   []interface{}
}

// effectCall resolves request into a bus call. Parameters missing from
// params take the daemon's usual defaults.
func effectCall(zone zoneAddr, request string, colours []string, params []interface{}) (call, error) {
	switch request {
	case "spectrum":
		return call{method: zone.method("Spectrum")}, nil
	case "none":
		return call{method: zone.method("None")}, nil
	case "breath_random":
		return call{method: zone.method("BreathRandom")}, nil
	case "wave":
		direction, err := intParam(params, 0, 1)
		if err != nil {
			return call{}, err
		}
		return call{method: zone.method("Wave"), args: []interface{}{int32(direction)}}, nil
	case "static":
		rgb, err := colourArgs(colours, 1)
		if err != nil {
			return call{}, err
		}
		return call{method: zone.method("Static"), args: rgb}, nil
	case "breath_single":
		rgb, err := colourArgs(colours, 1)
		if err != nil {
			return call{}, err
		}
		return call{method: zone.method("BreathSingle"), args: rgb}, nil
	case "breath_dual":
		rgb, err := colourArgs(colours, 2)
		if err != nil {
			return call{}, err
		}
		return call{method: zone.method("BreathDual"), args: rgb}, nil
	case "reactive":
		rgb, err := colourArgs(colours, 1)
		if err != nil {
			return call{}, err
		}
		speed, err := intParam(params, 0, 2)
		if err != nil {
			return call{}, err
		}
		if speed < 1 || speed > 4 {
			return call{}, fmt.Errorf("reactive speed %d out of range", speed)
		}
		return call{method: zone.method("Reactive"), args: append(rgb, byte(speed))}, nil
	case "brightness":
		level, err := floatParam(params, 0)
		if err != nil {
			return call{}, err
		}
		return call{method: zone.setBrightness(), args: []interface{}{math.Max(0, math.Min(100, level))}}, nil
	default:
		return call{}, fmt.Errorf("unsupported request %q", request)
	}
}

// colourArgs converts the first n hex colours to byte arguments.
func colourArgs(colours []string, n int) ([]interface{}, error) {
	if len(colours) < n {
		return nil, fmt.Errorf("need %d colours, got %d", n, len(colours))
	}
	args := make([]interface{}, 0, n*3)
	for _, hex := range colours[:n] {
		r, g, b, err := parseHex(hex)
		if err != nil {
			return nil, err
		}
		args = append(args, r, g, b)
	}
	return args, nil
}

func parseHex(hex string) (byte, byte, byte, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return r, g, b, nil
}

func intParam(params []interface{}, i, fallback int) (int, error) {
	if i >= len(params) || params[i] == nil {
		return fallback, nil
	}
	return model.ToInt(params[i])
}

func floatParam(params []interface{}, i int) (float64, error) {
	if i >= len(params) || params[i] == nil {
		return 0, fmt.Errorf("missing parameter %d", i)
	}
	switch v := params[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		n, err := model.ToInt(v)
		return float64(n), err
	}
}
