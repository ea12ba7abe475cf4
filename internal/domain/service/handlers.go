package service

import (
	"context"
	"errors"
	"fmt"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/domain/translator"
)

// View functions invoked by the handlers.
const (
	viewOpenDeviceOverview = "open_device_overview"
	viewOpenDeviceError    = "_open_device_error"
	viewOpenDevice         = "_open_device"
	viewTroubleshootResult = "_show_troubleshoot_results"

	variableCacheDevices = "CACHE_DEVICES"
)

// updateDeviceList refreshes the view's device cache, then runs the view
// function named by "callback".
func (r *Router) updateDeviceList(ctx context.Context, payload model.Payload) error {
	list := r.backend.ListDevices(ctx)
	r.view.SetVariable(variableCacheDevices, list.ViewValue())

	callback, err := payload.String("callback")
	if err != nil {
		return err
	}
	r.view.Invoke(callback, nil)
	return nil
}

func (r *Router) openDevice(ctx context.Context, payload model.Payload) error {
	uid, err := payload.Int("uid")
	if err != nil {
		return err
	}

	res := r.backend.GetDevice(ctx, uid)
	switch res.Kind {
	case model.ResultDeviceGone:
		r.view.Invoke(viewOpenDeviceOverview, nil)
	case model.ResultDaemonException:
		r.view.Invoke(viewOpenDeviceError, map[string]interface{}{
			"code":      -2,
			"exception": res.Message,
		})
	case model.ResultInvalidRequest:
		report(r, res)
	default:
		r.view.Invoke(viewOpenDevice, res.Value)
	}
	return nil
}

// applyToAll sets every zone of every connected device to the same effect,
// brightness or colour. Individual results are not reported.
func (r *Router) applyToAll(ctx context.Context, payload model.Payload) error {
	requestType, err := payload.String("type")
	if err != nil {
		return err
	}
	value, err := payload.Value("value")
	if err != nil {
		return err
	}

	strategy, ok := r.factory.GetStrategy(translator.ApplyType(requestType))
	if !ok {
		r.logger.Warn("apply to all: unsupported type", "type", requestType)
		return nil
	}

	list := r.backend.ListDevices(ctx)
	if list.Status != model.DeviceListReady {
		r.logger.Warn("apply to all: device list unavailable", "message", list.Message)
		return nil
	}
	for _, device := range list.Available() {
		for _, zone := range device.Zones {
			if err := strategy.Apply(ctx, r.backend, device, zone, value); err != nil {
				return fmt.Errorf("apply %s to device %d zone %s: %w", requestType, device.UID, zone, err)
			}
		}
	}
	return nil
}

func (r *Router) setDeviceState(ctx context.Context, payload model.Payload) error {
	change, err := stateChangeFrom(payload)
	if err != nil {
		return err
	}

	r.logger.Debug("processing request",
		"request", change.BackendRequest, "uid", change.UID, "backend", change.Backend, "zone", change.Zone)
	res := r.backend.SetState(ctx, change.UID, change.BackendRequest, change.Zone, change.Colours, change.Params)
	if report(r, res) {
		r.logger.Info("successfully executed request", "request", change.BackendRequest, "uid", change.UID)
	}
	return nil
}

func stateChangeFrom(payload model.Payload) (model.StateChange, error) {
	var (
		c   model.StateChange
		err error
	)
	if c.UID, err = payload.Int("uid"); err != nil {
		return c, err
	}
	if c.Backend, err = payload.String("backend"); err != nil {
		return c, err
	}
	if c.BackendRequest, err = payload.String("backend_request"); err != nil {
		return c, err
	}
	if c.Zone, err = payload.String("zone"); err != nil {
		return c, err
	}
	if c.Colours, err = payload.Strings("colour_hex"); err != nil {
		return c, err
	}
	if c.Params, err = payload.List("params"); err != nil {
		return c, err
	}
	return c, nil
}

func (r *Router) debugMatrix(ctx context.Context, payload model.Payload) error {
	uid, err := payload.Int("uid")
	if err != nil {
		return err
	}
	position, err := payload.List("position")
	if err != nil {
		return err
	}
	if len(position) < 2 {
		return fmt.Errorf("%w: position needs [row, column], got %v", model.ErrInvalidField, position)
	}
	row, err := model.ToInt(position[0])
	if err != nil {
		return fmt.Errorf("row: %w", err)
	}
	column, err := model.ToInt(position[1])
	if err != nil {
		return fmt.Errorf("column: %w", err)
	}

	if report(r, r.backend.DebugMatrix(ctx, uid, row, column)) {
		r.logger.Info(fmt.Sprintf("OK: [%d,%d]", row, column))
	}
	return nil
}

func (r *Router) openHelp(ctx context.Context, payload model.Payload) error {
	if err := r.browser.Open(r.helpURL); err != nil {
		return fmt.Errorf("open %s: %w", r.helpURL, err)
	}
	return nil
}

// troubleshoot has its own failure dialog, distinct from the router's
// generic one.
func (r *Router) troubleshoot(ctx context.Context, payload model.Payload) error {
	r.logger.Warn("running troubleshooter for OpenRazer")
	results, err := r.runTroubleshooter(ctx)
	if err != nil {
		r.logger.Error("troubleshooting encountered an exception", "error", err)
		r.openDialog(r.messages.Get("troubleshoot"), r.messages.Get("troubleshoot_cannot_run"), model.SeveritySerious)
		return nil
	}
	r.view.Invoke(viewTroubleshootResult, results)
	r.logger.Info("troubleshooting finished")
	return nil
}

func (r *Router) runTroubleshooter(ctx context.Context) (results []model.TroubleshootResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Join(err, fmt.Errorf("troubleshooter panic: %v", rec))
		}
	}()
	return r.backend.Troubleshoot(ctx)
}
