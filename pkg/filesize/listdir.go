package filesize

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// Option configures ListDir and Total.
type Option func(*options)

type options struct {
	filter      string
	followLinks bool
	relPath     bool
	system      bitmath.System
}

func newOptions(opts []Option) options {
	o := options{filter: "*"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFilter keeps only files whose base name matches the filepath.Match
// pattern. The default is "*". A malformed pattern matches nothing.
func WithFilter(pattern string) Option {
	return func(o *options) { o.filter = pattern }
}

// WithFollowLinks descends into symlinked directories and reports symlinked
// files. Without it symlinks are skipped.
func WithFollowLinks(follow bool) Option {
	return func(o *options) { o.followLinks = follow }
}

// WithRelPath reports paths relative to the working directory instead of
// absolute paths.
func WithRelPath(rel bool) Option {
	return func(o *options) { o.relPath = rel }
}

// WithBestPrefix converts every size to the best prefix of system instead of
// reporting Bytes.
func WithBestPrefix(system bitmath.System) Option {
	return func(o *options) { o.system = system }
}

// ListDir walks the tree under root and yields every regular file with its
// size. Each directory's files are yielded in lexical order before its
// subdirectories are visited, also in lexical order. Entries that can not
// be read are skipped. The sequence walks the tree again every time it is
// ranged over.
func ListDir(root string, opts ...Option) iter.Seq2[string, bitmath.Size] {
	o := newOptions(opts)
	return func(yield func(string, bitmath.Size) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return
		}
		w := &walker{options: o, yield: yield}
		if o.relPath {
			if w.cwd, err = os.Getwd(); err != nil {
				return
			}
		}
		w.walk(abs, nil)
	}
}

type walker struct {
	options
	cwd   string
	yield func(string, bitmath.Size) bool
}

// walk returns false once the consumer stops the iteration.
func (w *walker) walk(dir string, ancestors []os.FileInfo) bool {
	info, err := os.Stat(dir)
	if err != nil {
		return true
	}
	// a followed link back up the tree
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	ancestors = append(ancestors, info)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return true
	}
	var dirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			if !w.followLinks {
				continue
			}
			target, err := os.Stat(path)
			if err != nil {
				continue
			}
			mode = target.Mode().Type()
		}
		switch {
		case mode.IsDir():
			dirs = append(dirs, path)
		case mode.IsRegular():
			if ok, _ := filepath.Match(w.filter, e.Name()); !ok {
				continue
			}
			fi, err := os.Stat(path)
			if err != nil {
				continue
			}
			if !w.yield(w.display(path), sizeOf(fi.Size(), w.system)) {
				return false
			}
		}
	}
	for _, d := range dirs {
		if !w.walk(d, ancestors) {
			return false
		}
	}
	return true
}

func (w *walker) display(path string) string {
	if !w.relPath {
		return path
	}
	if rel, err := filepath.Rel(w.cwd, path); err == nil {
		return rel
	}
	return path
}
