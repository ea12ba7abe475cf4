// Package mocks provides testify mocks of the ports for use in tests.
package mocks

import (
	"context"
	"rgb-controller/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type Backend struct {
	mock.Mock
}

func (m *Backend) ListDevices(ctx context.Context) model.DeviceList {
	args := m.Called(ctx)
	return args.Get(0).(model.DeviceList)
}

func (m *Backend) GetDevice(ctx context.Context, uid int) model.Result[*model.DeviceDetail] {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.Result[*model.DeviceDetail])
}

func (m *Backend) SetState(ctx context.Context, uid int, request, zone string, colours []string, params []interface{}) model.Result[model.Empty] {
	args := m.Called(ctx, uid, request, zone, colours, params)
	return args.Get(0).(model.Result[model.Empty])
}

func (m *Backend) SetColours(ctx context.Context, uid int, zone string, colours []string) model.Result[model.Empty] {
	args := m.Called(ctx, uid, zone, colours)
	return args.Get(0).(model.Result[model.Empty])
}

func (m *Backend) DebugMatrix(ctx context.Context, uid, row, column int) model.Result[model.Empty] {
	args := m.Called(ctx, uid, row, column)
	return args.Get(0).(model.Result[model.Empty])
}

func (m *Backend) Troubleshoot(ctx context.Context) ([]model.TroubleshootResult, error) {
	args := m.Called(ctx)
	results, _ := args.Get(0).([]model.TroubleshootResult)
	return results, args.Error(1)
}
