package ports

import (
	"context"
	"rgb-controller/internal/domain/model"
)

// BackendPort talks to a lighting daemon. Device operations never return Go
// errors: failures are reported through the model.Result kind.
type BackendPort interface {
	ListDevices(ctx context.Context) model.DeviceList
	GetDevice(ctx context.Context, uid int) model.Result[*model.DeviceDetail]
	SetState(ctx context.Context, uid int, request, zone string, colours []string, params []interface{}) model.Result[model.Empty]
	SetColours(ctx context.Context, uid int, zone string, colours []string) model.Result[model.Empty]
	DebugMatrix(ctx context.Context, uid, row, column int) model.Result[model.Empty]
	Troubleshoot(ctx context.Context) ([]model.TroubleshootResult, error)
}
