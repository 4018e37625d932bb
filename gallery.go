package main

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// galleryItem is one image plus its caption in the generated fragment.
type galleryItem struct {
	Src     string
	Caption string
}

var galleryTemplate = template.Must(template.New("gallery").Parse(`<div class="gallery">
{{range .}}<figure><img src="{{.Src}}" alt="{{.Caption}}" loading="lazy"><figcaption>{{.Caption}}</figcaption></figure>
{{end}}</div>
`))

// generateGallery reads images and caption sidecars from GalleryDir and
// writes gallery.html under the output root. Each image may carry a
// <name>.txt sidecar with its caption; a missing sidecar leaves the caption
// empty. The fragment goes through the HTML pipeline like any built page.
func (app *App) generateGallery() error {
	entries, err := os.ReadDir(app.GalleryDir)
	if err != nil {
		return err
	}

	images := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		if e.IsDir() {
			return false
		}
		switch strings.TrimPrefix(filepath.Ext(e.Name()), ".") {
		case "jpg", "jpeg", "png", "gif", "webp", "svg":
			return true
		}
		return false
	})

	items := lo.Map(images, func(e os.DirEntry, _ int) galleryItem {
		name := e.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		caption := ""
		if data, err := os.ReadFile(filepath.Join(app.GalleryDir, base+".txt")); err == nil {
			caption = strings.TrimSpace(string(data))
		}
		return galleryItem{Src: name, Caption: caption}
	})

	var buf bytes.Buffer
	if err := galleryTemplate.Execute(&buf, items); err != nil {
		return err
	}

	out := filepath.Join(app.OutputDir, "gallery.html")
	if err := os.WriteFile(out, []byte(MinifyHTML(buf.String())), 0644); err != nil {
		return err
	}
	logInfo("Generated gallery.html with %d item%s", len(items), plural(len(items)))
	return nil
}
