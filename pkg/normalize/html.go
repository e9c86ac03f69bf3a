package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	lineBreakMatcher = cascadia.MustCompile(`br`)
	paragraphMatcher = cascadia.MustCompile(`p`)

	blankLinesRegexp = regexp.MustCompile(`\n{3,}`)
)

func parseFragment(s string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// reading from a strings.Reader does not fail
		panic(fmt.Sprintf("can not parse html fragment: %v", err))
	}
	return doc
}

// StripTags removes all markup from s and decodes entities.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return norm.NFC.String(s)
	}
	return norm.NFC.String(parseFragment(s).Text())
}

// StripNamedTags removes opening and closing tags with the given names and
// keeps everything else, markup included.
func StripNamedTags(s string, names ...string) string {
	if len(names) == 0 {
		return s
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	re := regexp.MustCompile(`(?i)</?(?:` + strings.Join(quoted, "|") + `)(?:\s[^>]*)?>`)
	return re.ReplaceAllString(s, "")
}

// CleanBlocks flattens an HTML fragment into plain text that keeps its line
// structure: <br> and the end of a paragraph become newlines, whitespace
// inside a line is collapsed and runs of blank lines are cut to one.
func CleanBlocks(s string) string {
	doc := parseFragment(s)
	doc.FindMatcher(lineBreakMatcher).Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(newlineNode())
	})
	doc.FindMatcher(paragraphMatcher).Each(func(_ int, p *goquery.Selection) {
		p.AfterNodes(newlineNode())
	})

	lines := strings.Split(norm.NFC.String(doc.Text()), "\n")
	for i, line := range lines {
		lines[i] = collapseSpace(line)
	}
	text := blankLinesRegexp.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

func newlineNode() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
