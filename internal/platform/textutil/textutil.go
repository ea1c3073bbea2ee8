// Package textutil holds the small string transforms shared by the
// extraction flows.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	sentenceRegex   = regexp.MustCompile(`[.?!]\s+`)
	paragraphRegex  = regexp.MustCompile(`\n\s*\n`)
)

// hiddenElements never contribute visible text.
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// CollapseWhitespace replaces every whitespace run with one space and trims
// the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Truncate returns at most n characters (runes) of s.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// StrippedText walks every text node under sel, trims each one, drops the
// empty ones and joins the rest with sep. Text inside script, style,
// noscript and template elements is skipped.
func StrippedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, out *[]string) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, s)
		}
		return
	case html.ElementNode:
		if hiddenElements[n.Data] {
			return
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// SplitSentences splits on '.', '?' or '!' followed by whitespace and
// returns the trimmed, non-empty pieces, at most limit of them.
func SplitSentences(s string, limit int) []string {
	return trimmedPieces(sentenceRegex.Split(s, -1), limit)
}

// SplitParagraphs splits on blank lines and returns the trimmed, non-empty
// pieces, at most limit of them.
func SplitParagraphs(s string, limit int) []string {
	return trimmedPieces(paragraphRegex.Split(s, -1), limit)
}

// NonEmptyLines returns the lines of s that contain something other than
// whitespace, unmodified, at most limit of them.
func NonEmptyLines(s string, limit int) []string {
	var lines []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSuffix(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if limit >= 0 && len(lines) == limit {
			break
		}
		lines = append(lines, ln)
	}
	return lines
}

func trimmedPieces(pieces []string, limit int) []string {
	out := []string{}
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if limit >= 0 && len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}
