package utils

import (
	"fmt"
	"strings"
)

const sizeUnitStep = 1024

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders the byte total of the summary statistics line, e.g. "512b", "1.5kb", "10mb".
// Values below ten keep one decimal unless it is zero. Negative totals render as "0b".
func FormatFileSize(byteCount int64) string {
	if byteCount < sizeUnitStep {
		if byteCount < 0 {
			byteCount = 0
		}
		return fmt.Sprintf("%d%s", byteCount, sizeUnits[0])
	}
	scaledValue := float64(byteCount)
	unitIndex := 0
	for scaledValue >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		scaledValue /= sizeUnitStep
		unitIndex++
	}
	if scaledValue >= 10 {
		return fmt.Sprintf("%.0f%s", scaledValue, sizeUnits[unitIndex])
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0") + sizeUnits[unitIndex]
}
