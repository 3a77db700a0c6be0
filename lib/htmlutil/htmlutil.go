package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the text content of a node with every fragment separated
// by a newline. Fragment boundaries matter: header lines and running-mate
// pairs are only distinguishable by them.
func GetText(node *html.Node) string {
	var pieces []string
	getTextRecursive(node, &pieces)
	return strings.Join(pieces, "\n")
}

func getTextRecursive(node *html.Node, pieces *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*pieces = append(*pieces, node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, pieces)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n\s*\n+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims a node's rendered text, collapsing runs of spaces while
// preserving line breaks (which carry meaning in candidate cells).
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n")
	return strings.Trim(s, " \n\t")
}

// FirstHref returns the href of the first anchor under sel, or "".
func FirstHref(sel *goquery.Selection) string {
	href, _ := sel.Find("a").First().Attr("href")
	return href
}
