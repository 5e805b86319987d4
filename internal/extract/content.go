package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/newsverify/internal/model"
	"golang.org/x/net/html"
)

// Elements removed before any text is read
var boilerplateSelector = "script, style, nav, footer, header"

// ContentExtractor turns an article page into plain text
type ContentExtractor struct {
	selectors []string
	maxRunes  int
}

// NewContentExtractor creates an extractor from config
func NewContentExtractor(cfg model.ExtractConfig) *ContentExtractor {
	selectors := cfg.Selectors
	if len(selectors) == 0 {
		selectors = model.DefaultArticleSelectors
	}
	maxRunes := cfg.MaxContentRunes
	if maxRunes <= 0 {
		maxRunes = 5000
	}
	return &ContentExtractor{
		selectors: selectors,
		maxRunes:  maxRunes,
	}
}

// Extract pulls the title and article text out of an HTML page.
//
// The first configured selector that matches defines the article region;
// if it yields no text, all <p> elements are joined instead.
func (e *ContentExtractor) Extract(htmlContent string, pageURL string) (*model.Article, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(boilerplateSelector).Remove()

	var text string
	for _, selector := range e.selectors {
		region := doc.Find(selector).First()
		if region.Length() > 0 {
			text = joinText(region.Nodes, " ")
			break
		}
	}

	// Fall back to paragraphs
	if text == "" {
		var paragraphs []string
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			paragraphs = append(paragraphs, joinText(p.Nodes, ""))
		})
		text = strings.Join(paragraphs, " ")
	}

	title := joinText(doc.Find("title").First().Nodes, "")

	return &model.Article{
		Title:   title,
		Content: truncateRunes(collapseWhitespace(text), e.maxRunes),
		URL:     pageURL,
		Domain:  Domain(pageURL),
	}, nil
}

// Domain returns the network location of a URL, port included
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// joinText joins the trimmed, non-empty text nodes under the given nodes
func joinText(nodes []*html.Node, sep string) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
