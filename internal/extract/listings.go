// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls structured pieces out of free-form model output:
// enumerated list items from a grounded search answer, and the reasoning and
// answer segments of a Chain-of-Thought response.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// listingRe matches a numbered marker at the start of a line, e.g.
// "\n1. **Title** text". The marker must follow a newline, so an item on the
// very first line of the input is not matched.
var listingRe = regexp.MustCompile(`\n\d+\.\s+(.*)`)

// Listings returns the text following each numbered marker, in order, with
// trailing whitespace removed. Items that are blank after trimming are dropped.
func Listings(text string) []string {
	var items []string
	for _, m := range listingRe.FindAllStringSubmatch(text, -1) {
		item := strings.TrimRightFunc(m[1], unicode.IsSpace)
		if strings.TrimSpace(item) == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
