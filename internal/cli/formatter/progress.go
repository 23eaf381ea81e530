package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is green above 66%, yellow from 33%, red below.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderHoursProgress renders completed/required as a bar followed by
// "1h 30m / 4h".
func RenderHoursProgress(completed, required float64, width int) string {
	pct := 0.0
	if required > 0 {
		pct = completed / required
	}
	return fmt.Sprintf("%s %s", RenderProgress(pct, width),
		Dim(FormatHours(completed)+" / "+FormatHours(required)))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
