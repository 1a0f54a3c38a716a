package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgo renders t relative to now, e.g. "3 hours ago".
func TimeAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
