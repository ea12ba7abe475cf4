package service

import (
	"html"
	"rgb-controller/internal/domain/model"
)

// report applies the shared result policy: every failure kind becomes a
// dialog. It returns true only for a successful result.
func report[T any](r *Router, res model.Result[T]) bool {
	switch res.Kind {
	case model.ResultSuccess:
		return true
	case model.ResultDeviceGone:
		r.logger.Warn("device not found in backend")
		r.openDialog(r.messages.Get("error_device_gone_title"), r.messages.Get("error_device_gone_text"), model.SeverityWarning)
	case model.ResultInvalidRequest:
		r.logger.Warn("invalid request")
		r.openDialog(r.messages.Get("error_bad_request_title"), r.messages.Get("error_bad_request_text"), model.SeverityWarning)
	case model.ResultDaemonException:
		r.openDialog(
			r.messages.Get("error_backend_title"),
			r.messages.Get("error_backend_text")+"<pre>"+html.EscapeString(res.Message)+"</pre>",
			model.SeveritySerious,
		)
		r.logger.Error(res.Message)
	}
	return false
}
