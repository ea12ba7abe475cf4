package ports

import "time"

// ViewPort pushes state into the webview.
type ViewPort interface {
	// Invoke runs the named view function with data as its argument. nil data
	// is sent as an empty object.
	Invoke(function string, data interface{})
	// SetVariable replaces a global variable in the view.
	SetVariable(name string, value interface{})
}

type WindowPort interface {
	Show()
}

type BrowserPort interface {
	Open(url string) error
}

// Recorder observes dispatched requests.
type Recorder interface {
	ObserveRequest(request, outcome string, elapsed time.Duration)
}
