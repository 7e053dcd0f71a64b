// Package progress reports transfer progress and speed as bitmath sizes.
package progress

import (
	"time"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

const DefaultSpeedTemplate = "{value:.2f} {unit}/s"

// minMeasurable is the smallest elapsed time in seconds, and the smallest
// transferred amount in bytes, for which a speed is computed.
const minMeasurable = 2e-6

// TransferSpeed renders the average transfer speed.
type TransferSpeed struct {
	// System selects the prefixes; zero means NIST.
	System bitmath.System
	// Template is a bitmath template; empty means DefaultSpeedTemplate.
	Template string
}

// Speed returns the average speed per second, scaled to the best prefix.
func (t TransferSpeed) Speed(transferred float64, elapsed time.Duration) bitmath.Size {
	seconds := elapsed.Seconds()
	if seconds < minMeasurable || transferred < minMeasurable {
		return bitmath.Byte.New(0)
	}
	system := t.System
	if system == 0 {
		system = bitmath.NIST
	}
	return bitmath.BestPrefix(transferred/seconds, system)
}

// Render formats Speed with the template, e.g. "51.20 MiB/s".
func (t TransferSpeed) Render(transferred float64, elapsed time.Duration) string {
	tmpl := t.Template
	if tmpl == "" {
		tmpl = DefaultSpeedTemplate
	}
	return t.Speed(transferred, elapsed).FormatTemplate(tmpl)
}
