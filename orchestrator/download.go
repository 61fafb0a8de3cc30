package orchestrator

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/1broseidon/textviz/models"
)

const svgMIMEType = "image/svg+xml;charset=utf-8"

// Saver persists a downloaded artifact: a browser response, a file, ...
type Saver interface {
	Save(name, mimeType string, data []byte) error
}

// SaverFunc adapts a plain function to Saver.
type SaverFunc func(name, mimeType string, data []byte) error

func (f SaverFunc) Save(name, mimeType string, data []byte) error {
	return f(name, mimeType, data)
}

// DirSaver writes artifacts into a directory, creating it on first use.
type DirSaver struct {
	Dir string
	// Saved holds the path of the last file written.
	Saved string
}

func (d *DirSaver) Save(name, _ string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	d.Saved = path
	return nil
}

// Download saves the artifact currently on display. Illustrations are saved
// from the image data URI. Diagrams are saved from the renderer's live output,
// not from the stored markup, so nothing is saved while no rendered output
// exists. Every failure is absorbed.
func (o *Orchestrator) Download(saver Saver) {
	s := o.Snapshot()
	if s.Result == nil {
		return
	}
	stamp := o.now().UnixMilli()

	if s.Result.Category() == models.CategoryIllustration {
		mimeType, data, err := models.ParseDataURI(s.Result.Content())
		if err != nil {
			o.logger.Warnf("download skipped: %v", err)
			return
		}
		o.save(saver, fmt.Sprintf("visual-%d%s", stamp, imageExtension(mimeType)), mimeType, data)
		return
	}

	if s.Rendered == nil || s.Rendered.SVG == "" {
		o.logger.Debug("download skipped: no rendered diagram on display")
		return
	}
	o.save(saver, fmt.Sprintf("diagram-%d.svg", stamp), svgMIMEType, []byte(s.Rendered.SVG))
}

var preferredExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// imageExtension picks the file extension for an image MIME type, ".png" when unknown.
func imageExtension(mimeType string) string {
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".png"
	}
	if ext, ok := preferredExtensions[base]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(base); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}

func (o *Orchestrator) save(saver Saver, name, mimeType string, data []byte) {
	if err := saver.Save(name, mimeType, data); err != nil {
		o.logger.Warnf("download of %s failed: %v", name, err)
	}
}
