package flatblog

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostURL returns the site-relative URL of the document at docPath.
// Each path segment is escaped; the slashes between them are kept.
func PostURL(docPath string) string {
	segments := strings.Split(docPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/post/" + strings.Join(segments, "/") + "/"
}

// AbsoluteURL joins the site base URL with rel, a site-relative URL such as
// the result of PostURL or CategoryURL. rel is used as is, escapes included.
func AbsoluteURL(base, rel string) string {
	return strings.TrimRight(base, "/") + rel
}

// CategoryURL returns the site-relative URL of the listing for label.
func CategoryURL(label string) string {
	return "/category/" + url.PathEscape(label) + "/"
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post Document, cfg SiteConfig) string {
	postURL := AbsoluteURL(cfg.URL, PostURL(post.Path))
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": post.Title(),
		"url":      postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if s := post.Summary(); s != "" {
		data["description"] = s
	}
	if d := post.Date(); d != "" {
		data["datePublished"] = d
	}
	author := post.Meta.Get("Author", cfg.Author)
	if author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if c := post.Meta.Get("Category", ""); c != "" {
		data["articleSection"] = c
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
