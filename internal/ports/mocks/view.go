package mocks

import (
	"rgb-controller/internal/domain/model"
	"sync"

	"github.com/stretchr/testify/mock"
)

// Call is one push recorded by View.
type Call struct {
	Kind string // "invoke" or "variable"
	Name string
	Data interface{}
}

// View records every push instead of asserting expectations up front, so
// tests can check ordering.
type View struct {
	mu    sync.Mutex
	Calls []Call
}

func (v *View) Invoke(function string, data interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls = append(v.Calls, Call{Kind: "invoke", Name: function, Data: data})
}

func (v *View) SetVariable(name string, value interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls = append(v.Calls, Call{Kind: "variable", Name: name, Data: value})
}

// Invocations returns the invoke calls made to function.
func (v *View) Invocations(function string) []Call {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []Call
	for _, c := range v.Calls {
		if c.Kind == "invoke" && c.Name == function {
			out = append(out, c)
		}
	}
	return out
}

// Variables returns the values assigned to name, oldest first.
func (v *View) Variables(name string) []interface{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []interface{}
	for _, c := range v.Calls {
		if c.Kind == "variable" && c.Name == name {
			out = append(out, c.Data)
		}
	}
	return out
}

// Dialogs returns the dialogs opened through open_dialog.
func (v *View) Dialogs() []model.Dialog {
	var out []model.Dialog
	for _, c := range v.Invocations("open_dialog") {
		if d, ok := c.Data.(model.Dialog); ok {
			out = append(out, d)
		}
	}
	return out
}

type Browser struct {
	mock.Mock
}

func (m *Browser) Open(url string) error {
	return m.Called(url).Error(0)
}

type Window struct {
	Shown int
}

func (w *Window) Show() {
	w.Shown++
}
