package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SaveUpload persists an uploaded image under dir with a random name and
// returns the public path recorded in the store. Random names rule out the
// same-instant collisions of a timestamp-derived scheme.
func SaveUpload(fileHeader *multipart.FileHeader, dir string) (string, error) {
	if fileHeader.Size > MaxFileSize {
		return "", fmt.Errorf("file %s exceeds the 5MB size limit", fileHeader.Filename)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file %s has an unsupported format. Only JPG and PNG are allowed", fileHeader.Filename)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filepath.Join(dir, filename)), nil
}
