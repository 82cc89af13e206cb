package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"

	"github.com/eringen/flatblog"
	"github.com/eringen/flatblog/markdown"
)

// parseDocument splits src into metadata and body and renders the body.
func parseDocument(docPath string, src []byte, md *markdown.Renderer) (flatblog.Document, error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	meta, body, err := splitMetadata(src)
	if err != nil {
		return flatblog.Document{}, err
	}
	html, err := md.Render(body)
	if err != nil {
		return flatblog.Document{}, err
	}
	return flatblog.Document{
		Path: docPath,
		Body: string(body),
		HTML: html,
		Meta: meta,
	}, nil
}

// splitMetadata reads delimited front matter (YAML "---", TOML "+++" or JSON
// "{"). Without delimiters it falls back to a bare YAML header: the lines
// before the first blank line, when they form a mapping.
func splitMetadata(src []byte) (flatblog.Metadata, []byte, error) {
	if !delimited(src) {
		if meta, rest, ok := bareHeader(src); ok {
			return meta, rest, nil
		}
		return flatblog.Metadata{}, src, nil
	}
	var raw map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(src), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("front matter: %w", err)
	}
	return toMetadata(raw), body, nil
}

func delimited(src []byte) bool {
	first := src
	if i := bytes.IndexByte(src, '\n'); i >= 0 {
		first = src[:i]
	}
	switch string(bytes.TrimSpace(first)) {
	case "---", "+++", "{":
		return true
	}
	return false
}

func bareHeader(src []byte) (flatblog.Metadata, []byte, bool) {
	head, rest := src, []byte(nil)
	if i := bytes.Index(src, []byte("\n\n")); i >= 0 {
		head, rest = src[:i], src[i+2:]
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return nil, nil, false
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(head, &raw); err != nil || len(raw) == 0 {
		return nil, nil, false
	}
	return toMetadata(raw), bytes.TrimLeft(rest, "\n"), true
}

func toMetadata(raw map[string]interface{}) flatblog.Metadata {
	meta := make(flatblog.Metadata, len(raw))
	for k, v := range raw {
		meta[k] = stringify(v)
	}
	return meta
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	case []string:
		return strings.Join(x, ", ")
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, stringify(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(x)
	}
}
