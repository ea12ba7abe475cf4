package openrazer

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/domain/translator"
	"rgb-controller/internal/ports"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

type zoneKey struct {
	serial string
	zone   string
}

// Client is the OpenRazer backend. Devices are addressed by their index in
// the daemon's device list.
type Client struct {
	bus    Caller
	conn   *dbus.Conn
	logger *slog.Logger

	mu      sync.Mutex
	colours map[zoneKey][]string
	effects map[zoneKey]string
}

var _ ports.BackendPort = (*Client)(nil)

// Dial connects to the session bus. timeout bounds every daemon call.
func Dial(timeout time.Duration, logger *slog.Logger) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	c := NewClient(&dbusCaller{conn: conn, timeout: timeout}, logger)
	c.conn = conn
	return c, nil
}

func NewClient(bus Caller, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		bus:     bus,
		logger:  logger,
		colours: make(map[zoneKey][]string),
		effects: make(map[zoneKey]string),
	}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) ListDevices(ctx context.Context) model.DeviceList {
	running, err := c.bus.Running(ctx)
	if err != nil {
		return model.DeviceList{Status: model.DeviceListException, Message: err.Error()}
	}
	if !running {
		return model.DeviceList{Status: model.DeviceListDaemonMissing}
	}

	serials, err := c.serials(ctx)
	if err != nil {
		if isDaemonGone(err) {
			return model.DeviceList{Status: model.DeviceListDaemonMissing}
		}
		return model.DeviceList{Status: model.DeviceListException, Message: err.Error()}
	}

	devices := make([]*model.Device, 0, len(serials))
	for uid, serial := range serials {
		d, err := c.describe(ctx, uid, serial)
		if err != nil {
			c.logger.Warn("OpenRazer: device not readable", "serial", serial, "error", err)
			d = &model.Device{UID: uid, Backend: model.BackendOpenRazer, Serial: serial, Name: serial, Zones: []string{}}
		}
		devices = append(devices, d)
	}
	return model.DeviceList{Status: model.DeviceListReady, Devices: devices}
}

func (c *Client) GetDevice(ctx context.Context, uid int) model.Result[*model.DeviceDetail] {
	serial, res := resolve[*model.DeviceDetail](c, ctx, uid)
	if !res.OK() {
		return res
	}
	d, err := c.describe(ctx, uid, serial)
	if err != nil {
		return classify[*model.DeviceDetail](err)
	}

	detail := &model.DeviceDetail{Device: *d, State: make(map[string]*model.ZoneState, len(d.Zones))}
	path := devicePath(serial)
	if err := c.optional(ctx, path, ifaceMisc+".getFirmware", &detail.Firmware); err != nil {
		return classify[*model.DeviceDetail](err)
	}
	var vidpid []int32
	if err := c.optional(ctx, path, ifaceMisc+".getVidPid", &vidpid); err != nil {
		return classify[*model.DeviceDetail](err)
	}
	if len(vidpid) == 2 {
		detail.VIDPID = fmt.Sprintf("%04X:%04X", vidpid[0], vidpid[1])
	}
	dims, err := c.matrix(ctx, serial)
	if err != nil {
		return classify[*model.DeviceDetail](err)
	}
	detail.Matrix = dims

	for _, zone := range d.Zones {
		var brightness float64
		if err := c.optional(ctx, path, zones[zone].getBrightness(), &brightness); err != nil {
			return classify[*model.DeviceDetail](err)
		}
		c.mu.Lock()
		effect := c.effects[zoneKey{serial, zone}]
		c.mu.Unlock()
		detail.State[zone] = translator.ZoneState(brightness, effect, d.Available)
	}
	return model.Success(detail)
}

func (c *Client) SetState(ctx context.Context, uid int, request, zone string, colours []string, params []interface{}) model.Result[model.Empty] {
	serial, res := resolve[model.Empty](c, ctx, uid)
	if !res.OK() {
		return res
	}
	addr, ok := zones[zone]
	if !ok {
		c.logger.Warn("OpenRazer: unknown zone", "zone", zone)
		return model.InvalidRequest[model.Empty]()
	}

	key := zoneKey{serial, zone}
	if len(colours) == 0 {
		colours = c.rememberedColours(key)
	}
	bc, err := effectCall(addr, request, colours, params)
	if err != nil {
		c.logger.Warn("OpenRazer: invalid request", "request", request, "error", err)
		return model.InvalidRequest[model.Empty]()
	}
	if err := c.bus.Call(ctx, devicePath(serial), bc.method, nil, bc.args...); err != nil {
		return classify[model.Empty](err)
	}

	c.mu.Lock()
	if request != "brightness" {
		c.effects[key] = request
	}
	if len(colours) > 0 {
		c.colours[key] = colours
	}
	c.mu.Unlock()
	return model.Success(model.Empty{})
}

// SetColours sets the zone's primary colour and shows it as a static effect.
func (c *Client) SetColours(ctx context.Context, uid int, zone string, colours []string) model.Result[model.Empty] {
	if len(colours) == 0 {
		return model.InvalidRequest[model.Empty]()
	}
	return c.SetState(ctx, uid, "static", zone, colours, nil)
}

// DebugMatrix lights a single key white and turns every other key off.
func (c *Client) DebugMatrix(ctx context.Context, uid, row, column int) model.Result[model.Empty] {
	serial, res := resolve[model.Empty](c, ctx, uid)
	if !res.OK() {
		return res
	}
	dims, err := c.matrix(ctx, serial)
	if err != nil {
		return classify[model.Empty](err)
	}
	if dims == nil || row < 0 || column < 0 || row >= dims.Rows || column >= dims.Columns {
		return model.InvalidRequest[model.Empty]()
	}

	path := devicePath(serial)
	for r := 0; r < dims.Rows; r++ {
		payload := []byte{byte(r), 0, byte(dims.Columns - 1)}
		for col := 0; col < dims.Columns; col++ {
			if r == row && col == column {
				payload = append(payload, 0xFF, 0xFF, 0xFF)
			} else {
				payload = append(payload, 0, 0, 0)
			}
		}
		if err := c.bus.Call(ctx, path, ifaceChroma+".setKeyRow", nil, payload); err != nil {
			return classify[model.Empty](err)
		}
	}
	if err := c.bus.Call(ctx, path, ifaceChroma+".setCustom", nil); err != nil {
		return classify[model.Empty](err)
	}
	return model.Success(model.Empty{})
}

func (c *Client) serials(ctx context.Context) ([]string, error) {
	var serials []string
	if err := c.bus.Call(ctx, rootPath, ifaceDevices+".getDevices", &serials); err != nil {
		return nil, err
	}
	return serials, nil
}

// resolve maps uid to a serial, reporting a missing device as DeviceGone.
func resolve[T any](c *Client, ctx context.Context, uid int) (string, model.Result[T]) {
	serials, err := c.serials(ctx)
	if err != nil {
		return "", classify[T](err)
	}
	if uid < 0 || uid >= len(serials) {
		return "", model.DeviceGone[T]()
	}
	return serials[uid], model.Success(*new(T))
}

func (c *Client) describe(ctx context.Context, uid int, serial string) (*model.Device, error) {
	path := devicePath(serial)
	d := &model.Device{UID: uid, Backend: model.BackendOpenRazer, Serial: serial, Available: true}
	if err := c.bus.Call(ctx, path, ifaceMisc+".getDeviceName", &d.Name); err != nil {
		return nil, err
	}
	if err := c.bus.Call(ctx, path, ifaceMisc+".getDeviceType", &d.FormFactor); err != nil {
		return nil, err
	}
	zoneNames, err := c.zones(ctx, path)
	if err != nil {
		return nil, err
	}
	d.Zones = zoneNames
	return d, nil
}

// zones lists the lighting zones the device object implements.
func (c *Client) zones(ctx context.Context, path string) ([]string, error) {
	var data string
	if err := c.bus.Call(ctx, path, methodIntrospect, &data); err != nil {
		return nil, err
	}
	var node introspect.Node
	if err := xml.Unmarshal([]byte(data), &node); err != nil {
		return nil, fmt.Errorf("introspect %s: %w", path, err)
	}
	present := make(map[string]bool, len(node.Interfaces))
	for _, iface := range node.Interfaces {
		present[iface.Name] = true
	}
	out := []string{}
	for _, zone := range zoneOrder {
		if present[zones[zone].iface] {
			out = append(out, zone)
		}
	}
	return out, nil
}

func (c *Client) matrix(ctx context.Context, serial string) (*model.MatrixDimensions, error) {
	path := devicePath(serial)
	var has bool
	if err := c.optional(ctx, path, ifaceMisc+".hasMatrix", &has); err != nil || !has {
		return nil, err
	}
	var dims []int32
	if err := c.bus.Call(ctx, path, ifaceMisc+".getMatrixDimensions", &dims); err != nil {
		return nil, err
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("unexpected matrix dimensions %v", dims)
	}
	return &model.MatrixDimensions{Rows: int(dims[0]), Columns: int(dims[1])}, nil
}

// optional calls a method that not every device implements. A missing
// method leaves out untouched.
func (c *Client) optional(ctx context.Context, path, method string, out interface{}) error {
	err := c.bus.Call(ctx, path, method, out)
	if err != nil && errorName(err) == errUnknownMethod {
		return nil
	}
	return err
}

func (c *Client) rememberedColours(key zoneKey) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if colours, ok := c.colours[key]; ok {
		return colours
	}
	return []string{defaultColour, defaultColour}
}

// classify maps a failed bus call onto a result kind.
func classify[T any](err error) model.Result[T] {
	switch errorName(err) {
	case errUnknownObject:
		return model.DeviceGone[T]()
	case errUnknownMethod, errInvalidArgs:
		return model.InvalidRequest[T]()
	default:
		return model.DaemonException[T](err.Error())
	}
}
