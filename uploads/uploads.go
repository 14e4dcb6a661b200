package uploads

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxImageSize caps uploaded images at 10 MB.
const MaxImageSize = 10 << 20

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file exceeds maximum size")
)

// Dir is the base upload directory, served under /uploads.
func Dir() string {
	if d := os.Getenv("UPLOAD_DIR"); d != "" {
		return d
	}
	return "./uploads"
}

// SaveImage validates extension and size, writes the file under
// <dir>/<subdir> with a timestamped cleaned filename and returns the public
// path.
func SaveImage(c *gin.Context, fh *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}
	if fh.Size > MaxImageSize {
		return "", ErrTooLarge
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	// Strip stacked extensions like "photo.jpg.jpg".
	for {
		e := strings.ToLower(filepath.Ext(base))
		if !allowedExts[e] {
			break
		}
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.ReplaceAll(base, " ", "_")

	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	saveDir := filepath.Join(Dir(), subdir)
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	if err := c.SaveUploadedFile(fh, filepath.Join(saveDir, filename)); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	return "/uploads/" + subdir + "/" + filename, nil
}

// Remove deletes the local file behind a public /uploads path. Missing files
// are not an error.
func Remove(publicPath string) error {
	rel, found := strings.CutPrefix(publicPath, "/uploads/")
	if !found || rel == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(Dir(), filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
