package dashboard

import "time"

// SetNow pins the clock used for the donation windows.
func (h *Handler) SetNow(t time.Time) { h.now = func() time.Time { return t } }
