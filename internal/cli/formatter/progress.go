package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a download bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderTargetBar renders intake against a daily target. The bar fills at
// 100%; past 110% it turns red, within 90-110% it is green.
func RenderTargetBar(percent int, width int) string {
	width = max(width, 2)
	filled := min(max(percent, 0)*width/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleBlue
	switch {
	case percent > 110:
		style = StyleRed
	case percent >= 90:
		style = StyleGreen
	}
	return fmt.Sprintf("%s %3d%%", style.Render(bar), percent)
}
