package markdown

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// md is the shared GFM renderer. Goldmark converters are safe for
// concurrent use.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML renders GitHub-flavored Markdown as an HTML fragment.
func ToHTML(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// ToHTMLDocument renders Markdown as a standalone HTML page with the
// given title.
func ToHTMLDocument(source []byte, title string) ([]byte, error) {
	body, err := ToHTML(source)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// FromHTML converts an HTML document or fragment to Markdown.
func FromHTML(source []byte) ([]byte, error) {
	out, err := htmltomarkdown.ConvertString(string(source))
	if err != nil {
		return nil, fmt.Errorf("convert html: %w", err)
	}
	return []byte(out), nil
}

// Title returns the text of the first top-level Markdown heading, or
// "" when the document has none.
func Title(source []byte) string {
	for _, raw := range strings.Split(string(source), "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

// HTMLTitle extracts the document title from HTML: the <title> element
// first, then the first <h1>. Returns "" when neither exists.
func HTMLTitle(source []byte) string {
	doc, err := html.Parse(bytes.NewReader(source))
	if err != nil {
		return ""
	}
	if t := findText(doc, "title"); t != "" {
		return t
	}
	return findText(doc, "h1")
}

func findText(n *html.Node, element string) string {
	if n.Type == html.ElementNode && n.Data == element {
		return strings.TrimSpace(nodeText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findText(c, element); t != "" {
			return t
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
