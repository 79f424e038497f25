package surface

import "strings"

// wrapLines breaks text into lines no wider than maxWidth as reported by
// measure, splitting on spaces. A single word wider than maxWidth gets a line
// of its own. Explicit newlines are kept.
func wrapLines(text string, maxWidth float32, measure func(string) float32) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if maxWidth > 0 && measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
