// Package sl holds small helpers for building slog attributes.
package sl

import "log/slog"

// Err returns an attribute with key "error" holding err's text.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// UserID returns the attribute used to tag log lines with the end user.
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}
