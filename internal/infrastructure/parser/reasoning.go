package parser

import (
	"regexp"
	"strings"

	"screen-agent/internal/domain/entity"
)

// numberedItem matches the start of a "1. " style list item.
var numberedItem = regexp.MustCompile(`(?m)^[ \t]*\d+\.\s`)

const bullet = "- "

// splitNumbered cuts text at numbered list items. Text before the first item
// is returned as preamble.
func splitNumbered(text string) (preamble string, items []string) {
	locs := numberedItem.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return strings.TrimSpace(text), nil
	}
	preamble = strings.TrimSpace(text[:locs[0][0]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if item := strings.TrimSpace(text[loc[1]:end]); item != "" {
			items = append(items, item)
		}
	}
	return preamble, items
}

func isBullet(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), bullet)
}

func hasBullets(item string) bool {
	lines := strings.Split(item, "\n")
	for _, l := range lines[1:] {
		if isBullet(l) {
			return true
		}
	}
	return false
}

// parseSection reads "label\n- a\n- b". Continuation lines are joined onto
// the preceding bullet.
func parseSection(item string) entity.ReasoningSection {
	var section entity.ReasoningSection
	for i, line := range strings.Split(item, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case isBullet(line):
			section.Statements = append(section.Statements, strings.TrimSpace(strings.TrimPrefix(line, bullet)))
		case i == 0:
			section.Label = line
		case len(section.Statements) > 0:
			last := len(section.Statements) - 1
			section.Statements[last] += " " + line
		default:
			section.Label = strings.TrimSpace(section.Label + " " + line)
		}
	}
	return section
}

// ParseReasoning turns a reasoning block into either labelled sections (every
// numbered item carries "- " bullets) or a flat list of statements. With
// sections set, the block is always read as sections.
func ParseReasoning(text string, sections bool) *entity.Reasoning {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	preamble, items := splitNumbered(text)
	if len(items) == 0 {
		if sections {
			return &entity.Reasoning{Sections: []entity.ReasoningSection{parseSection(preamble)}}
		}
		return &entity.Reasoning{Statements: []string{preamble}}
	}

	if !sections {
		sections = true
		for _, item := range items {
			if !hasBullets(item) {
				sections = false
				break
			}
		}
	}

	r := &entity.Reasoning{}
	if sections {
		for _, item := range items {
			r.Sections = append(r.Sections, parseSection(item))
		}
		return r
	}

	if preamble != "" {
		r.Statements = append(r.Statements, preamble)
	}
	r.Statements = append(r.Statements, items...)
	return r
}
