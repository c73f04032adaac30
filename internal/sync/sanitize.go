package sync

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockedElements are removed together with their content. This is
// blocklist sanitization on purpose: everything else in the description
// markup passes through untouched.
var blockedElements = map[string]bool{
	"script": true,
	"iframe": true,
	"embed":  true,
	"object": true,
}

// SanitizeHTML strips script/iframe/embed/object elements and every on*
// attribute from the fragment. stripImages additionally removes <img>
// elements (the ICS import path does this; Asana descriptions keep
// their images). Input that does not parse is returned unchanged.
func SanitizeHTML(input string, stripImages bool) string {
	if input == "" || !strings.Contains(input, "<") {
		return input
	}

	bodyCtx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(input), bodyCtx)
	if err != nil {
		return input
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	sanitizeNode(root, stripImages)

	var out strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return input
		}
	}
	return out.String()
}

func sanitizeNode(n *html.Node, stripImages bool) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling

		if c.Type == html.ElementNode {
			name := strings.ToLower(c.Data)
			if blockedElements[name] || (stripImages && name == "img") {
				n.RemoveChild(c)
				continue
			}
			kept := c.Attr[:0]
			for _, a := range c.Attr {
				if strings.HasPrefix(strings.ToLower(a.Key), "on") {
					continue
				}
				kept = append(kept, a)
			}
			c.Attr = kept
		}

		sanitizeNode(c, stripImages)
	}
}
