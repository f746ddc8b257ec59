package parser

import "strings"

// ParseSteps splits a comma separated step list, dropping blank entries.
func ParseSteps(content string) []string {
	var steps []string
	for _, s := range strings.Split(content, ",") {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}
