// Package humanize formats byte counts for humans.
package humanize

import "fmt"

var units = []string{"KiB", "MiB", "GiB", "TiB"}

func scaled(n uint64, suffix string) string {
	if n < 1024 {
		return fmt.Sprintf("%d B%s", n, suffix)
	}
	f := float64(n) / 1024
	unit := units[0]
	for _, u := range units[1:] {
		if f < 1024 {
			break
		}
		f /= 1024
		unit = u
	}
	return fmt.Sprintf("%.f %s%s", f, unit, suffix)
}

// Bytes formats n with the largest binary unit it reaches, e.g. "64 MiB".
func Bytes(n uint64) string { return scaled(n, "") }

// BPS formats a rate in bytes per second, e.g. "12 MiB/s".
func BPS(bps uint64) string { return scaled(bps, "/s") }
