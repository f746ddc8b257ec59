package parser

import (
	"regexp"
	"strings"
)

// Tag is the name of a delimiter pair in model output, written
// <|name_begin|>...<|name_end|>. Grounding models emit <|name_start|> as the
// opener, so both spellings are accepted.
type Tag string

const (
	TagContextAnalysis Tag = "context_analysis"
	TagObjectRef       Tag = "object_ref"
	TagBox             Tag = "box"
	TagAction          Tag = "action"
	TagReasoning       Tag = "reasoning"
	TagSteps           Tag = "steps"
)

var tagPatterns = map[Tag]*regexp.Regexp{}

func init() {
	for _, tag := range []Tag{TagContextAnalysis, TagObjectRef, TagBox, TagAction, TagReasoning, TagSteps} {
		name := regexp.QuoteMeta(string(tag))
		tagPatterns[tag] = regexp.MustCompile(`(?s)<\|` + name + `_(?:begin|start)\|>(.*?)<\|` + name + `_end\|>`)
	}
}

func (t Tag) Open() string  { return "<|" + string(t) + "_begin|>" }
func (t Tag) Close() string { return "<|" + string(t) + "_end|>" }

// Wrap encloses content in the tag's delimiters.
func (t Tag) Wrap(content string) string { return t.Open() + content + t.Close() }

// Extract returns the trimmed content of the first t pair in text.
func Extract(text string, t Tag) (string, bool) {
	content, _, ok := extractWithRest(text, t)
	return content, ok
}

// extractWithRest also returns the text that follows the closing delimiter.
func extractWithRest(text string, t Tag) (content, rest string, ok bool) {
	loc := tagPatterns[t].FindStringSubmatchIndex(text)
	if loc == nil {
		return "", "", false
	}
	return strings.TrimSpace(text[loc[2]:loc[3]]), text[loc[1]:], true
}
