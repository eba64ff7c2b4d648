package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"goboard/config"
	"goboard/internal/domain/attachment"
	board_errors "goboard/pkg/errors"

	"github.com/google/uuid"
)

// Resolver decides where an accepted file lives on disk. Stored names are
// random uuid tokens plus the lower-cased original extension, so no path
// component ever derives from client input and concurrent uploads cannot
// collide.
type Resolver struct {
	rootPath   string
	filesPath  string
	imagesPath string
	webImages  string
}

func NewResolver(cfg config.UploadConfig) (*Resolver, error) {
	root, err := filepath.Abs(cfg.RootPath)
	if err != nil {
		return nil, err
	}
	files, err := filepath.Abs(cfg.FilesPath)
	if err != nil {
		return nil, err
	}
	images, err := filepath.Abs(cfg.ImagesPath)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		rootPath:   root,
		filesPath:  files,
		imagesPath: images,
		webImages:  strings.TrimRight(cfg.WebImagesPath, "/"),
	}
	if err := r.ensureDirs(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) ensureDirs() error {
	for _, dir := range []string{r.rootPath, r.filesPath, r.imagesPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// Resolve generates a collision-free stored name for filename and returns
// it with the absolute target path for the category. The subdirectory is
// re-created if something removed it since startup.
func (r *Resolver) Resolve(filename string, category attachment.Category) (storedName, absPath string, err error) {
	if err := r.ensureDirs(); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	storedName = uuid.New().String() + ext

	dir := r.filesPath
	if category == attachment.CategoryImage {
		dir = r.imagesPath
	}
	absPath = filepath.Join(dir, storedName)
	return storedName, absPath, nil
}

// WebURL returns the public path for an image stored name. Generic files
// have no public URL; they go through the download endpoint.
func (r *Resolver) WebURL(storedName string) string {
	return r.webImages + "/" + storedName
}

// Root returns the absolute upload root every stored path must stay under.
func (r *Resolver) Root() string {
	return r.rootPath
}

// ImagesDir returns the absolute directory image attachments are stored in.
func (r *Resolver) ImagesDir() string {
	return r.imagesPath
}

// Contain normalizes p and verifies it still falls under the upload root.
// The check runs on the normalized form; a tampered or corrupted stored
// path fails here no matter what the database says.
func (r *Resolver) Contain(p string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", board_errors.ErrSecurityViolation
	}
	if abs != r.rootPath && !strings.HasPrefix(abs, r.rootPath+string(filepath.Separator)) {
		return "", board_errors.ErrSecurityViolation
	}
	return abs, nil
}
