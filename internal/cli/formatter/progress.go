package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScoreBar renders a 0-100 score as a colored bar like
// [██████░░░░]  62.5.
func RenderScoreBar(score float64, width int) string {
	score = max(0, min(score, 100))
	if width < 2 {
		width = 2
	}

	filled := int(score / 100 * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %5.1f", ScoreColor(score).Render(bar), score)
}
