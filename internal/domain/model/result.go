package model

// ResultKind classifies the outcome of a device-level backend call.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultDeviceGone
	ResultInvalidRequest
	ResultDaemonException
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultDeviceGone:
		return "device_gone"
	case ResultInvalidRequest:
		return "invalid_request"
	case ResultDaemonException:
		return "daemon_exception"
	default:
		return "unknown"
	}
}

// Result is what every device operation of a backend returns instead of an
// error. Message is only set for ResultDaemonException.
type Result[T any] struct {
	Kind    ResultKind
	Value   T
	Message string
}

func Success[T any](v T) Result[T] {
	return Result[T]{Kind: ResultSuccess, Value: v}
}

func DeviceGone[T any]() Result[T] {
	return Result[T]{Kind: ResultDeviceGone}
}

func InvalidRequest[T any]() Result[T] {
	return Result[T]{Kind: ResultInvalidRequest}
}

func DaemonException[T any](message string) Result[T] {
	return Result[T]{Kind: ResultDaemonException, Message: message}
}

func (r Result[T]) OK() bool {
	return r.Kind == ResultSuccess
}

// Empty is the value type of operations that only report success.
type Empty struct{}
