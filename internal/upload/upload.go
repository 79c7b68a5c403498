package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbnailSize = 160

// Saver writes uploaded images into a local directory that is later served
// statically under Route. Saved files are never overwritten or cleaned up.
type Saver struct {
	dir   string
	route string
}

// NewSaver creates the upload directory if it does not exist yet. Directory
// creation happens here, once at startup, not per request.
func NewSaver(dir, route string) (*Saver, error) {
	const op = "upload.NewSaver"

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &Saver{dir: dir, route: strings.TrimSuffix(route, "/")}, nil
}

// Result points at the stored image, as server-relative URLs.
type Result struct {
	URL          string
	ThumbnailURL string
}

// Save persists the byte stream under a random uuid-based filename that keeps
// the extension of the client-supplied name but nothing else of it. A file
// without an extension is saved without one. If the bytes decode as an image
// a small JPEG thumbnail is written next to it; payloads that do not decode
// still save fine and just have no thumbnail.
func (s *Saver) Save(originalFilename string, src io.Reader) (*Result, error) {
	const op = "upload.Save"

	token := uuid.New().String()
	savedName := token + filepath.Ext(originalFilename)
	savedPath := filepath.Join(s.dir, savedName)

	f, err := os.Create(savedPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	res := &Result{URL: s.route + "/" + savedName}

	img, err := imaging.Open(savedPath)
	if err != nil {
		return res, nil
	}
	thumbName := token + "_thumb.jpg"
	thumb := imaging.Thumbnail(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.dir, thumbName)); err != nil {
		return res, nil
	}
	res.ThumbnailURL = s.route + "/" + thumbName

	return res, nil
}
