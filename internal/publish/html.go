package publish

import (
	"bytes"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in titles is dropped, not passed through.
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML converts markdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderPage wraps RenderHTML output in a standalone document.
func RenderPage(title, md string) (string, error) {
	body, err := RenderHTML(md)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	err = pageTmpl.Execute(&b, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		// goldmark output is trusted only because raw HTML is disabled above.
		Body: template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile writes content to path, refusing to replace an existing file
// unless overwrite is set.
func WriteFile(path, content string, overwrite bool) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("missing --to")
	}
	path = filepath.Clean(path)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
