package browser

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkg/browser"
)

// Opener opens URLs in the user's default browser.
type Opener struct {
	open   func(url string) error
	logger *slog.Logger
}

func New(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{open: browser.OpenURL, logger: logger}
}

func (o *Opener) Open(url string) error {
	o.logger.Info("opening " + url)
	if err := o.open(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// Window shows the web UI by opening its address once.
type Window struct {
	URL    string
	opener *Opener
	once   sync.Once
}

func NewWindow(url string, opener *Opener) *Window {
	return &Window{URL: url, opener: opener}
}

func (w *Window) Show() {
	w.once.Do(func() {
		if err := w.opener.Open(w.URL); err != nil {
			w.opener.logger.Warn("could not open the UI, browse to it manually", "url", w.URL, "error", err)
		}
	})
}
