package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageError is a filesystem write failure or a disallowed destination.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error for %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// write persists data under the destination directory atomically: the
// payload lands in a temp file first and is renamed into place, so a
// cancelled invocation never leaves a truncated file at the final path.
func (r *Resolver) write(ctx context.Context, destHint, filename string, data []byte) (string, error) {
	dir, err := r.destDir(destHint)
	if err != nil {
		return "", err
	}

	if !safeFilename(filename) {
		return "", &StorageError{Path: filename, Err: fmt.Errorf("filename escapes the output directory")}
	}
	final := filepath.Join(dir, filename)

	tmp, err := os.CreateTemp(dir, "."+filename+".tmp*")
	if err != nil {
		return "", &StorageError{Path: final, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", &StorageError{Path: final, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Path: final, Err: err}
	}

	// Commit only if the invocation is still live.
	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Path: final, Err: err}
	}
	return final, nil
}

// destDir resolves the effective output directory. Relative hints are rooted
// at the base path; the directory must already exist.
func (r *Resolver) destDir(destHint string) (string, error) {
	dir := r.basePath
	if destHint != "" {
		if filepath.IsAbs(destHint) {
			dir = destHint
		} else {
			dir = filepath.Join(r.basePath, destHint)
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &StorageError{Path: dir, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &StorageError{Path: abs, Err: fmt.Errorf("output directory does not exist: %w", err)}
	}
	if !info.IsDir() {
		return "", &StorageError{Path: abs, Err: fmt.Errorf("output path is not a directory")}
	}
	return abs, nil
}

// safeFilename rejects names that could traverse outside the destination.
func safeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.IsLocal(name)
}

// ReadFile reads a previously written file back from under the base path,
// applying the same traversal checks as write. Used by the resource handler
// to serve files mode output as MCP resources.
func (r *Resolver) ReadFile(filename string) ([]byte, error) {
	dir, err := r.destDir("")
	if err != nil {
		return nil, err
	}
	if !safeFilename(filename) {
		return nil, &StorageError{Path: filename, Err: fmt.Errorf("filename escapes the output directory")}
	}

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, &StorageError{Path: filename, Err: err}
	}
	return data, nil
}
