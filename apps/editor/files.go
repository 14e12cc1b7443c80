package editor

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is where the editor loads and saves files. Names are
// slash-separated and relative to the root, as in io/fs.
type FileSystem interface {
	fs.FS
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	// Path returns the host path for name, used as the run command's file
	// argument and working directory.
	Path(name string) string
}

// OSFiles is a FileSystem over a host directory.
type OSFiles struct {
	root string
	fsys fs.FS
}

func NewOSFiles(root string) *OSFiles {
	return &OSFiles{root: root, fsys: os.DirFS(root)}
}

func (o *OSFiles) Open(name string) (fs.File, error) { return o.fsys.Open(name) }

func (o *OSFiles) ReadFile(name string) ([]byte, error) { return fs.ReadFile(o.fsys, name) }

func (o *OSFiles) WriteFile(name string, data []byte) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	p := o.Path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

func (o *OSFiles) Path(name string) string {
	return filepath.Join(o.root, filepath.FromSlash(name))
}
