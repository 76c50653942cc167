// Package uploads is the file-storage collaborator. The core only ever
// sees the opaque reference strings issued here.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LocalStore writes uploaded files to a directory and hands back
// uuid-based references.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save stores one uploaded file and returns its opaque reference.
func (s *LocalStore) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ref := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, ref)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return ref, nil
}

// SaveAll stores every file and returns their references in order.
func (s *LocalStore) SaveAll(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, file := range files {
		ref, err := s.Save(c, file)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
