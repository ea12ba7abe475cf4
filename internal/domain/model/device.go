package model

import "github.com/amimof/huego"

// BackendOpenRazer is the only backend provider currently supported.
const BackendOpenRazer = "openrazer"

// Lighting zones a device may expose.
const (
	ZoneMain      = "main"
	ZoneLogo      = "logo"
	ZoneScroll    = "scroll"
	ZoneBacklight = "backlight"
)

type Device struct {
	UID        int      `json:"uid"`
	Backend    string   `json:"backend"`
	Name       string   `json:"name"`
	FormFactor string   `json:"form_factor"`
	Serial     string   `json:"serial"`
	Available  bool     `json:"available"`
	Zones      []string `json:"zones"`
}

type MatrixDimensions struct {
	Rows    int `json:"rows"`
	Columns int `json:"cols"`
}

// ZoneState reuses the Hue light state shape for a lighting zone. Only On,
// Bri (0-254), Effect and Reachable are filled in.
type ZoneState = huego.State

// DeviceDetail is the payload rendered by the device page.
type DeviceDetail struct {
	Device
	Firmware string                `json:"firmware_version,omitempty"`
	VIDPID   string                `json:"vid_pid,omitempty"`
	Matrix   *MatrixDimensions     `json:"matrix,omitempty"`
	State    map[string]*ZoneState `json:"state"`
}

type DeviceListStatus int

const (
	DeviceListReady DeviceListStatus = iota
	DeviceListDaemonMissing
	DeviceListException
)

// DeviceList is the outcome of enumerating the daemon's devices.
type DeviceList struct {
	Status  DeviceListStatus
	Devices []*Device
	Message string
}

// ViewValue is what the view caches as CACHE_DEVICES: the device array, -1
// when the daemon is not running, or the exception text.
func (l DeviceList) ViewValue() interface{} {
	switch l.Status {
	case DeviceListDaemonMissing:
		return -1
	case DeviceListException:
		return l.Message
	default:
		if l.Devices == nil {
			return []*Device{}
		}
		return l.Devices
	}
}

// Available returns the devices currently connected.
func (l DeviceList) Available() []*Device {
	if l.Status != DeviceListReady {
		return nil
	}
	out := make([]*Device, 0, len(l.Devices))
	for _, d := range l.Devices {
		if d.Available {
			out = append(out, d)
		}
	}
	return out
}

type TroubleshootResult struct {
	TestName string `json:"test_name"`
	Result   bool   `json:"result"`
}

// StateChange is a single effect or setting applied to one zone of a device.
type StateChange struct {
	UID            int
	Backend        string
	BackendRequest string
	Zone           string
	Colours        []string
	Params         []interface{}
}
