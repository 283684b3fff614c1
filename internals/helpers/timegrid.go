// file: internals/helpers/timegrid.go
package helper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

/* ===============================
   Time grid math (menit & posisi)
=================================*/

// ErrInvalidTimeFormat dipakai semua parser waktu "HH:MM".
var ErrInvalidTimeFormat = errors.New("invalid time format (use HH:MM)")

const (
	MinutesPerHour  = 60
	MinutesPerDay   = 24 * 60
	DefaultSnapStep = 30 // granularity default klik/drag di grid
)

// ToMinutes parse "HH:MM" (atau "HH:MM:SS", detik diabaikan)
// menjadi menit sejak 00:00. Range valid: 00:00–23:59.
func ToMinutes(s string) (int, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return h*MinutesPerHour + m, nil
}

// FromMinutes kebalikan ToMinutes → "HH:MM". Nilai di-wrap ke 0..1439.
func FromMinutes(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/MinutesPerHour, m%MinutesPerHour)
}

// ToPosition memetakan waktu ke offset vertikal grid (mapping linear):
// offset = (menit - gridStartHour*60) / 60 * pixelsPerHour.
func ToPosition(s string, gridStartHour int, pixelsPerHour float64) (float64, error) {
	min, err := ToMinutes(s)
	if err != nil {
		return 0, err
	}
	return float64(min-gridStartHour*MinutesPerHour) / MinutesPerHour * pixelsPerHour, nil
}

// Snap membulatkan menit mentah (hasil konversi posisi pointer) ke kelipatan
// granularity terdekat. granularity <= 0 → DefaultSnapStep.
func Snap(rawMinutes, granularity int) int {
	if granularity <= 0 {
		granularity = DefaultSnapStep
	}
	if rawMinutes < 0 {
		return -Snap(-rawMinutes, granularity)
	}
	return (rawMinutes + granularity/2) / granularity * granularity
}
