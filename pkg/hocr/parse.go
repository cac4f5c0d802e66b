package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts raw hOCR data into a Document. Words are collected from
// anywhere under each ocr_page element regardless of the area, paragraph and
// line nesting the producing engine chose.
func Parse(data []byte) (*Document, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR markup: %w", err)
	}

	doc := &Document{}
	extractHead(doc, root)

	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.Contains(attrVal(n, "class"), "ocr_page") {
			doc.Pages = append(doc.Pages, parsePage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(root)

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return doc, nil
}

// ParseTitle breaks an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(strings.TrimSpace(part))
		if len(items) > 0 {
			props[items[0]] = items[1:]
		}
	}
	return props
}

// ParseBoundingBoxFromTitle extracts the bbox property from a title string,
// or nil when the title carries none.
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	props := ParseTitle(title)
	bbox, ok := props["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	x1, _ := strconv.ParseFloat(bbox[0], 64)
	y1, _ := strconv.ParseFloat(bbox[1], 64)
	x2, _ := strconv.ParseFloat(bbox[2], 64)
	y2, _ := strconv.ParseFloat(bbox[3], 64)
	return &BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// decodeToUTF8 honors a non-UTF8 charset declared in the file's meta tags.
func decodeToUTF8(data []byte) ([]byte, error) {
	content := string(data)
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return data, nil
	}
	snippet := content[idx+len("charset="):]
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>'
	})
	if len(fields) == 0 {
		// Truncated or empty charset declaration; treat as UTF-8.
		return data, nil
	}
	enc := strings.ToLower(fields[0])
	if enc == "" || enc == "utf-8" {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", enc, err)
	}
	return decoded, nil
}

func extractHead(doc *Document, root *html.Node) {
	var findHTMLLang func(*html.Node)
	findHTMLLang = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "html" {
			for _, a := range n.Attr {
				if a.Key == "lang" || a.Key == "xml:lang" {
					doc.Language = a.Val
					return
				}
			}
		}
		if n.Parent == nil {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				findHTMLLang(c)
			}
		}
	}
	findHTMLLang(root)

	var findHead func(*html.Node) *html.Node
	findHead = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "head" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := findHead(c); found != nil {
				return found
			}
		}
		return nil
	}
	head := findHead(root)
	if head == nil {
		return
	}

	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "title":
			if c.FirstChild != nil {
				doc.Title = c.FirstChild.Data
			}
		case "meta":
			var name, content string
			for _, attr := range c.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "content":
					content = attr.Val
				}
			}
			switch name {
			case "ocr-system":
				doc.System = content
			case "dc.language":
				if doc.Language == "" {
					doc.Language = content
				}
			}
		}
	}
}

func parsePage(n *html.Node) Page {
	page := Page{}

	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			page.ID = attr.Val
		case "title":
			if bbox := ParseBoundingBoxFromTitle(attr.Val); bbox != nil {
				page.BBox = *bbox
			}
			props := ParseTitle(attr.Val)
			if image, ok := props["image"]; ok && len(image) > 0 {
				page.ImageName = strings.Trim(image[0], `"`)
			}
			// ppageno counts from zero.
			if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
				if num, err := strconv.Atoi(ppageno[0]); err == nil {
					page.PageNumber = num + 1
				}
			}
		}
	}

	var collectWords func(*html.Node)
	collectWords = func(node *html.Node) {
		if node.Type == html.ElementNode && strings.Contains(attrVal(node, "class"), "ocrx_word") {
			page.Words = append(page.Words, parseWord(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collectWords(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c)
	}

	return page
}

func parseWord(n *html.Node) Word {
	word := Word{}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			word.ID = attr.Val
		case "title":
			if bbox := ParseBoundingBoxFromTitle(attr.Val); bbox != nil {
				word.BBox = *bbox
			}
			props := ParseTitle(attr.Val)
			if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
				word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
			}
		}
	}
	word.Text = textContent(n)
	return word
}

// textContent gathers all text under a node.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += textContent(c)
	}
	return strings.TrimSpace(text)
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
