//go:build !windows

package scope

import "errors"

// SystemQuery is a stub on platforms without a foreground-window
// facility. Every query fails, so a gate with a target configured is
// permanently out of scope here; global capture still works.
type SystemQuery struct{}

// NewSystemQuery creates the platform foreground query.
func NewSystemQuery() *SystemQuery {
	return &SystemQuery{}
}

func (q *SystemQuery) ForegroundProcessName() (string, error) {
	return "", errors.New("foreground window query not supported on this platform")
}
