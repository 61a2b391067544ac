package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText flattens the scraped text of a selection into a single
// printable, whitespace-collapsed line.
func CleanText(sel *goquery.Selection) string {
	text := removeNonPrintable(sel.Text())
	text = strings.Trim(text, " \t\n")
	return innerWhitespace.ReplaceAllString(text, " ")
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// ClassTokens splits the class attribute of the first node in the
// selection into its individual lowercase tokens.
func ClassTokens(sel *goquery.Selection) []string {
	raw := sel.AttrOr("class", "")
	fields := strings.Fields(strings.ToLower(raw))
	return fields
}

// HasClassToken reports whether any class token has the given suffix,
// which covers both bootstrap generations (`bg-success`, `badge-success`,
// `text-bg-success`).
func HasClassToken(tokens []string, suffix string) bool {
	for _, tok := range tokens {
		if tok == suffix || strings.HasSuffix(tok, "-"+suffix) {
			return true
		}
	}
	return false
}
