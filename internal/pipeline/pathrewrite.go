package pipeline

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewrittenAttrs lists the attributes holding local file references.
var rewrittenAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths turns relative img[src] and a[href] values into
// file:// URLs anchored at sourceDir, so the browser can load them from a
// temporary HTML file. URLs, anchors, absolute paths and paths escaping
// sourceDir are left as they are. An empty sourceDir returns the input.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rewriteTree(root, base)
	return renderHTML(root, fragment)
}

// parseHTML parses a full document, or a fragment in body context wrapped in
// a synthetic document node.
func parseHTML(content string) (root *html.Node, fragment bool, err error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		root, err = html.Parse(strings.NewReader(content))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root = &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderHTML renders root; fragments are rendered child by child so no
// <html><body> wrapper appears.
func renderHTML(root *html.Node, fragment bool) (string, error) {
	var sb strings.Builder
	if !fragment {
		err := html.Render(&sb, root)
		return sb.String(), err
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func rewriteTree(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		if key, ok := rewrittenAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key {
					n.Attr[i].Val = resolveLocal(n.Attr[i].Val, base)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteTree(c, base)
	}
}

// resolveLocal returns ref as a file:// URL when it is a relative path
// inside base, else ref unchanged.
func resolveLocal(ref, base string) string {
	if !isRelativePath(ref) {
		return ref
	}
	abs := filepath.Join(base, ref)
	if !isPathUnderDir(abs, base) {
		return ref
	}
	return pathToFileURL(abs)
}

// isRelativePath reports whether ref is a local relative path.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") || filepath.IsAbs(ref) {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}
	return true
}

// isPathUnderDir reports whether path is dir or lies below it.
func isPathUnderDir(path, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(path)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// fetchAttrs lists the attributes that make a browser load or follow a URL.
var fetchAttrs = map[string]bool{
	"src": true, "href": true, "srcset": true, "poster": true, "data": true,
	"background": true, "action": true, "formaction": true,
}

var (
	cssURL    = regexp.MustCompile(`(?i)url\(\s*(?:"([^"]*)"|'([^']*)'|([^)\s]*))\s*\)`)
	cssImport = regexp.MustCompile(`(?i)@import\s+(?:"([^"]*)"|'([^']*)')`)
)

// StripLocalReferences removes every reference a browser could resolve to
// a local file: attributes whose URL is not http(s), data, mailto or a
// fragment are dropped, and such url() and @import targets in style
// elements and style attributes are emptied. Relative paths count as local.
func StripLocalReferences(htmlContent string) (string, error) {
	root, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	stripTree(root)
	return renderHTML(root, fragment)
}

func stripTree(n *html.Node) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			switch {
			case fetchAttrs[a.Key] && !allRemote(a.Key, a.Val):
				continue
			case a.Key == "style":
				a.Val = stripLocalCSS(a.Val)
			case n.DataAtom == atom.Meta && a.Key == "http-equiv" && strings.EqualFold(a.Val, "refresh"):
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept

		if n.DataAtom == atom.Style {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					c.Data = stripLocalCSS(c.Data)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripTree(c)
	}
}

// allRemote checks a URL attribute; srcset holds a comma-separated list of
// candidates, each of which must be remote.
func allRemote(key, val string) bool {
	if key != "srcset" {
		return isRemoteRef(val)
	}
	for _, candidate := range strings.Split(val, ",") {
		if ref, _, _ := strings.Cut(strings.TrimSpace(candidate), " "); !isRemoteRef(ref) {
			return false
		}
	}
	return true
}

// isRemoteRef reports whether ref can only resolve off the local machine.
func isRemoteRef(ref string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" || strings.HasPrefix(ref, "#") {
		return true
	}
	for _, scheme := range []string{"http://", "https://", "data:", "mailto:"} {
		if strings.HasPrefix(ref, scheme) {
			return true
		}
	}
	return false
}

func stripLocalCSS(css string) string {
	css = cssURL.ReplaceAllStringFunc(css, func(m string) string {
		if isRemoteRef(firstGroup(cssURL.FindStringSubmatch(m))) {
			return m
		}
		return "url()"
	})
	return cssImport.ReplaceAllStringFunc(css, func(m string) string {
		if isRemoteRef(firstGroup(cssImport.FindStringSubmatch(m))) {
			return m
		}
		return `@import ""`
	})
}

// firstGroup returns the first non-empty submatch.
func firstGroup(groups []string) string {
	for _, g := range groups[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
