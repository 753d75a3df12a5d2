package definition

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Class names used by the Larousse result page.
const (
	containerClass  = "Definitions"
	annotationClass = "indicateurDefinition"
	exampleClass    = "ExempleDefinition"
)

// Entry is a single sense of a word as it appears in the definitions list.
// It may contain a leading usage label and an example sentence.
type Entry struct {
	node *html.Node
}

// Extract parses a dictionary page and returns the entries of its
// definitions list in document order. A page without a definitions list
// yields no entries.
func Extract(markup []byte) []Entry {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return []Entry{}
	}

	container := findElement(doc, func(n *html.Node) bool {
		return n.Data == "ul" && hasClass(n, containerClass)
	})
	if container == nil {
		return []Entry{}
	}

	entries := []Entry{}
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			entries = append(entries, Entry{node: c})
		}
	}

	return entries
}

// annotation returns the usage label of the entry, or nil when there is none
func (e Entry) annotation() *html.Node {
	return e.findClass(annotationClass)
}

// example returns the example sentence of the entry, or nil when there is none
func (e Entry) example() *html.Node {
	return e.findClass(exampleClass)
}

func (e Entry) findClass(class string) *html.Node {
	if e.node == nil {
		return nil
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := findElement(c, func(n *html.Node) bool { return hasClass(n, class) }); n != nil {
			return n
		}
	}
	return nil
}

// findElement returns the first element node in depth-first order below
// and including n that matches.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// text concatenates the text nodes below n, leaving out the skipped subtrees
func text(n *html.Node, skip ...*html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for _, s := range skip {
			if s != nil && n == s {
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
