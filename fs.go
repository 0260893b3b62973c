package srcfix

import (
	"bytes"
	"compress/zlib"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

func GetFileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func hashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

type PathResolver struct {
	base string
}

// NewPathResolver anchors relative catalog paths at base, defaulting to the
// current working directory.
func NewPathResolver(base string) (*PathResolver, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		base = wd
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	return &PathResolver{base: abs}, nil
}

func (r *PathResolver) Base() string { return r.base }

func (r *PathResolver) Resolve(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return filepath.Clean(relativePath)
	}
	return filepath.Join(r.base, relativePath)
}

func (r *PathResolver) Rel(path string) string {
	if rel, err := filepath.Rel(r.base, path); err == nil {
		return rel
	}
	return path
}

// WriteFileAtomic replaces path with content by writing a temp file in the
// same directory and renaming it over, so a half-written file never replaces
// the original. The original's mode is preserved when it exists.
func WriteFileAtomic(path string, content []byte, fallback fs.FileMode) error {
	mode := fallback
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".srcfix-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func WriteBlob(dir string, hash string, content []byte) error {
	blobDir := filepath.Join(dir, BlobsDir)
	if err := os.MkdirAll(blobDir, 0755); err != nil {
		return err
	}

	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	if _, err := w.Write(content); err != nil {
		return err
	}
	w.Close()

	return os.WriteFile(filepath.Join(blobDir, hash), b.Bytes(), 0644)
}

func ReadBlob(dir string, hash string) ([]byte, error) {
	if hash == "" {
		return []byte{}, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, BlobsDir, hash))
	if err != nil {
		return nil, err
	}

	if !isZlibCompressed(data) {
		return data, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data, nil
	}
	defer r.Close()

	return io.ReadAll(r)
}

func isZlibCompressed(data []byte) bool {
	return len(data) > 2 && data[0] == 0x78
}
