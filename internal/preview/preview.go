// Package preview decides how a stored document can be shown in a browser and
// resolves the URL the browser fetches it from. Files are never streamed through
// the gateway: previews and downloads point straight at the backend.
package preview

import (
	"path"
	"strings"
)

// Kind is the inline rendering strategy of a document.
type Kind string

const (
	KindImage    Kind = "image"
	KindPDF      Kind = "pdf"
	KindDownload Kind = "download"
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"svg":  true,
}

// Extension returns the lowercase extension, without the dot, of originalName when
// it has one and of ref otherwise. Query strings and fragments are ignored.
func Extension(ref, originalName string) string {
	if ext := extensionOf(originalName); ext != "" {
		return ext
	}
	return extensionOf(ref)
}

func extensionOf(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := path.Ext(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify maps a stored reference to its preview kind. Empty references are
// download-only.
func Classify(ref, originalName string) Kind {
	ext := Extension(ref, originalName)
	switch {
	case imageExtensions[ext]:
		return KindImage
	case ext == "pdf":
		return KindPDF
	default:
		return KindDownload
	}
}

// Preview is what a list view needs to render one document.
type Preview struct {
	Kind Kind `json:"kind"`
	// Inline is true for images (img tag) and PDFs (embedded frame).
	Inline bool   `json:"inline"`
	URL    string `json:"url,omitempty"`
}

// Resolver builds absolute file URLs against the backend base URL.
type Resolver struct {
	baseURL string
}

// NewResolver returns a Resolver for baseURL. A trailing slash is ignored.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the fetchable URL of ref. Absolute references are returned as is.
func (r *Resolver) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if isAbsolute(ref) {
		return ref
	}
	return r.baseURL + "/" + strings.TrimLeft(ref, "/")
}

// Resolve classifies ref and resolves its URL.
func (r *Resolver) Resolve(ref, originalName string) Preview {
	kind := Classify(ref, originalName)
	if strings.TrimSpace(ref) == "" {
		return Preview{Kind: KindDownload}
	}
	return Preview{
		Kind:   kind,
		Inline: kind != KindDownload,
		URL:    r.URL(ref),
	}
}

func isAbsolute(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}
