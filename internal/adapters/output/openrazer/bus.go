package openrazer

import (
	"context"
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName  = "org.razer"
	rootPath = "/org/razer"

	ifaceDevices   = "razer.devices"
	ifaceDaemon    = "razer.daemon"
	ifaceMisc      = "razer.device.misc"
	ifaceChroma    = "razer.device.lighting.chroma"
	ifaceBright    = "razer.device.lighting.brightness"
	ifaceLogo      = "razer.device.lighting.logo"
	ifaceScroll    = "razer.device.lighting.scroll"
	ifaceBacklight = "razer.device.lighting.backlight"

	methodIntrospect = "org.freedesktop.DBus.Introspectable.Introspect"
)

// D-Bus error names the client interprets.
const (
	errServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
	errNameHasNoOwner = "org.freedesktop.DBus.Error.NameHasNoOwner"
	errUnknownObject  = "org.freedesktop.DBus.Error.UnknownObject"
	errUnknownMethod  = "org.freedesktop.DBus.Error.UnknownMethod"
	errInvalidArgs    = "org.freedesktop.DBus.Error.InvalidArgs"
)

// Caller performs method calls against the OpenRazer service.
type Caller interface {
	// Call invokes method on the object at path and stores the reply in out
	// when out is not nil.
	Call(ctx context.Context, path, method string, out interface{}, args ...interface{}) error
	// Running reports whether the daemon owns its bus name.
	Running(ctx context.Context) (bool, error)
}

type dbusCaller struct {
	conn    *dbus.Conn
	timeout time.Duration
}

func (c *dbusCaller) Call(ctx context.Context, path, method string, out interface{}, args ...interface{}) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	call := c.conn.Object(busName, dbus.ObjectPath(path)).CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return call.Err
	}
	if out == nil {
		return nil
	}
	return call.Store(out)
}

func (c *dbusCaller) Running(ctx context.Context) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var owned bool
	err := c.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, busName).Store(&owned)
	return owned, err
}

func (c *dbusCaller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// errorName returns the D-Bus error name carried by err, if any.
func errorName(err error) string {
	var e dbus.Error
	if errors.As(err, &e) {
		return e.Name
	}
	var pe *dbus.Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Name
	}
	return ""
}

func isDaemonGone(err error) bool {
	name := errorName(err)
	return name == errServiceUnknown || name == errNameHasNoOwner
}

func devicePath(serial string) string {
	return rootPath + "/device/" + serial
}
