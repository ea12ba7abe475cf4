package openrazer

import (
	"context"
	"fmt"
	"rgb-controller/internal/domain/model"
)

// Troubleshoot runs self checks for common OpenRazer problems. An error is
// only returned when the bus itself cannot be queried.
func (c *Client) Troubleshoot(ctx context.Context) ([]model.TroubleshootResult, error) {
	running, err := c.bus.Running(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session bus: %w", err)
	}
	results := []model.TroubleshootResult{{TestName: "daemon_running", Result: running}}
	if !running {
		return results, nil
	}

	var version string
	versionErr := c.bus.Call(ctx, rootPath, ifaceDaemon+".version", &version)
	results = append(results, model.TroubleshootResult{TestName: "daemon_responding", Result: versionErr == nil})
	if versionErr == nil {
		c.logger.Debug("OpenRazer daemon version " + version)
	}

	serials, err := c.serials(ctx)
	results = append(results, model.TroubleshootResult{TestName: "devices_detected", Result: err == nil && len(serials) > 0})
	for _, serial := range serials {
		var name string
		nameErr := c.bus.Call(ctx, devicePath(serial), ifaceMisc+".getDeviceName", &name)
		results = append(results, model.TroubleshootResult{
			TestName: "device_readable_" + serial,
			Result:   nameErr == nil,
		})
	}
	return results, nil
}
