package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImageSources converts relative img[src] values in a full HTML
// document to absolute file:// URLs resolved against baseDir.
// The PDF renderer loads the document from a temporary file, so relative
// sources would otherwise resolve against the temp directory.
// If baseDir is empty, returns the HTML unchanged.
//
// Absolute paths, URLs, data URIs and sources escaping baseDir are left as is.
func RewriteImageSources(document, baseDir string) (string, error) {
	if baseDir == "" {
		return document, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}

	walkImages(doc, func(n *html.Node) {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativeSource(attr.Val) {
				continue
			}
			abs := filepath.Join(absBase, filepath.FromSlash(attr.Val))
			if !isWithin(abs, absBase) {
				continue
			}
			n.Attr[i].Val = fileURL(abs)
		}
	})

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// walkImages calls fn for every <img> element under n.
func walkImages(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, fn)
	}
}

// isRelativeSource reports whether src is a relative filesystem path.
func isRelativeSource(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "/") {
		return false
	}
	// Single-letter schemes are Windows drive letters.
	if u, err := url.Parse(src); err == nil && len(u.Scheme) > 1 {
		return false
	}
	return !filepath.IsAbs(src)
}

// isWithin reports whether path is dir or below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
