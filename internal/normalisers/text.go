// Package normalisers turns stored content bodies into clean plain text
// suitable for embedding and for display excerpts.
package normalisers

import (
	"html"
	"strings"
	"unicode"
)

// PlainText strips markup from content and collapses whitespace.
// Script and style blocks are dropped entirely, tags are removed, and HTML
// entities are decoded.
func PlainText(content string) string {
	content = removeBlocks(content, "script")
	content = removeBlocks(content, "style")
	content = stripTags(content)
	content = html.UnescapeString(content)
	return CollapseWhitespace(content)
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Excerpt returns the first maxWords words of the stripped content, with an
// ellipsis appended when the content was longer.
func Excerpt(content string, maxWords int) string {
	text := PlainText(content)
	if maxWords <= 0 {
		return ""
	}

	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "…"
}

// removeBlocks drops <tag>...</tag> blocks including their content.
func removeBlocks(content, tagName string) string {
	result := content
	startTag := "<" + tagName
	endTag := "</" + tagName + ">"

	for {
		lower := strings.ToLower(result)
		startIdx := strings.Index(lower, startTag)
		if startIdx == -1 {
			break
		}
		endIdx := strings.Index(lower[startIdx:], endTag)
		if endIdx == -1 {
			// Unterminated block: drop to end of content
			result = result[:startIdx]
			break
		}
		result = result[:startIdx] + result[startIdx+endIdx+len(endTag):]
	}
	return result
}

// stripTags removes HTML tags, replacing each with a space so adjacent
// words do not run together.
func stripTags(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
