package view

import (
	"encoding/json"
	"errors"
	"rgb-controller/internal/domain/model"
)

// Frame types sent to the view.
const (
	FrameInvoke   = "invoke"
	FrameVariable = "variable"
)

// InvokeFrame asks the view to run a function.
type InvokeFrame struct {
	Type     string      `json:"type"`
	Function string      `json:"function"`
	Data     interface{} `json:"data"`
}

// VariableFrame replaces a global variable in the view.
type VariableFrame struct {
	Type  string      `json:"type"`
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// Request is one message received from the view.
type Request struct {
	Request string        `json:"request"`
	Data    model.Payload `json:"data"`
}

func invokeFrame(function string, data interface{}) InvokeFrame {
	if data == nil {
		data = struct{}{}
	}
	return InvokeFrame{Type: FrameInvoke, Function: function, Data: data}
}

func variableFrame(name string, value interface{}) VariableFrame {
	return VariableFrame{Type: FrameVariable, Name: name, Value: value}
}

// DecodeRequest parses an inbound frame. A missing data object decodes as an
// empty payload.
func DecodeRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, err
	}
	if req.Data == nil {
		req.Data = model.Payload{}
	}
	return req, nil
}

var errNotBound = errors.New("webview not started")
