// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// Tag segment patterns. A segment ends at its closing tag, at the opening tag
// of the other segment, or at the end of the text.
var (
	thoughtRe = regexp.MustCompile(`(?is)<thought>(.*?)(?:</thought>|<answer>|\z)`)
	answerRe  = regexp.MustCompile(`(?is)<answer>(.*?)(?:</answer>|<thought>|\z)`)
	tagRe     = regexp.MustCompile(`(?i)</?(?:thought|answer)>`)
)

// CoT holds the two segments of a Chain-of-Thought response.
type CoT struct {
	Thought string `json:"thought"`
	Answer  string `json:"answer"`
}

// ParseCoT isolates the first <thought> and <answer> segments of response.
// Segment text is trimmed. ok reports whether at least one segment was found.
func ParseCoT(response string) (cot CoT, ok bool) {
	if m := thoughtRe.FindStringSubmatch(response); m != nil {
		cot.Thought = strings.TrimSpace(m[1])
		ok = true
	}
	if m := answerRe.FindStringSubmatch(response); m != nil {
		cot.Answer = strings.TrimSpace(m[1])
		ok = true
	}
	return cot, ok
}

// StripTags removes the <thought> and <answer> markers, leaving their content.
func StripTags(response string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(response, ""))
}
