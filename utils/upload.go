package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var ErrImageRequired = errors.New("image is required (either by upload or URL)")

// ImageIntake stores uploaded images on local disk and builds the public URL
// they are served from.
type ImageIntake struct {
	dir        string
	publicPath string
	now        func() time.Time
}

func NewImageIntake(dir, publicPath string) *ImageIntake {
	return &ImageIntake{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/"), now: time.Now}
}

func (i *ImageIntake) Dir() string        { return i.dir }
func (i *ImageIntake) PublicPath() string { return i.publicPath }

// EnsureDir creates the upload directory when missing.
func (i *ImageIntake) EnsureDir() error {
	if err := os.MkdirAll(i.dir, 0o750); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

// Filename returns the on-disk name for an upload: "<unix-millis>-<base name>".
func (i *ImageIntake) Filename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", i.now().UnixMilli(), base)
}

// Path is where filename is written.
func (i *ImageIntake) Path(filename string) string {
	return filepath.Join(i.dir, filename)
}

// URL builds the absolute URL of an uploaded file from the request's scheme and host.
func (i *ImageIntake) URL(r *http.Request, filename string) string {
	return fmt.Sprintf("%s://%s%s", RequestScheme(r), r.Host, path.Join(i.publicPath, filename))
}

// ResolveImageURL picks the stored image URL. An uploaded file wins over a link;
// a link is kept verbatim.
func ResolveImageURL(uploadedURL, link string) (string, error) {
	switch {
	case uploadedURL != "":
		return uploadedURL, nil
	case link != "":
		return link, nil
	default:
		return "", ErrImageRequired
	}
}

func RequestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
