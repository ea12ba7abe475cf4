package model

// Messages is the translated string table shared with the view as LOCALES.
type Messages map[string]string

// Get returns the translation for key, or key itself when missing.
func (m Messages) Get(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

// Merge returns a copy of m overlaid with other.
func (m Messages) Merge(other Messages) Messages {
	out := make(Messages, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

func DefaultMessages() Messages {
	return Messages{
		"error_generic_title":     "Internal Error",
		"error_generic_text":      "An unexpected error occurred while processing this request.",
		"error_not_ready_title":   "OpenRazer Not Ready",
		"error_not_ready_text":    "The OpenRazer daemon reported a problem while listing devices.<br><br>",
		"error_device_gone_title": "Device Unavailable",
		"error_device_gone_text":  "This device is no longer connected. It may have been unplugged.",
		"error_bad_request_title": "Invalid Request",
		"error_bad_request_text":  "This device does not support the requested setting.",
		"error_backend_title":     "Backend Error",
		"error_backend_text":      "The backend raised an exception while applying this setting.<br><br>",
		"troubleshoot":            "Troubleshoot",
		"troubleshoot_cannot_run": "The troubleshooter could not run. Check that OpenRazer is installed correctly.",
	}
}
