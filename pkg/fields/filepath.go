package fields

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FilePathConfig selects the files offered by a FilePathField.
type FilePathConfig struct {
	// Path is the directory to list.
	Path string
	// Match, when set, is searched in each file name (not the full path).
	Match string
	// Recursive lists subdirectories too.
	Recursive bool
	// FS is the filesystem to list. Defaults to the host filesystem, in
	// which case a relative Path is resolved against the working directory.
	FS billy.Filesystem
}

// FilePathField is a ChoiceField whose choices are the files under a
// directory. Choice values are full paths; labels are paths relative to
// the directory.
type FilePathField struct {
	ChoiceField
	path      string
	match     *regexp.Regexp
	recursive bool
}

// NewFilePathField lists cfg.Path and constructs the field. Listing and
// pattern errors are returned.
func NewFilePathField(cfg FilePathConfig, opts ...Option) (*FilePathField, error) {
	fs := cfg.FS
	root := cfg.Path
	if fs == nil {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("fields: file path %q: %w", root, err)
		}
		fs = osfs.New("/")
		root = abs
	}

	var match *regexp.Regexp
	if cfg.Match != "" {
		re, err := regexp.Compile(cfg.Match)
		if err != nil {
			return nil, fmt.Errorf("fields: file path match %q: %w", cfg.Match, err)
		}
		match = re
	}

	field := &FilePathField{
		ChoiceField: *NewChoiceField(nil, opts...),
		path:        root,
		match:       match,
		recursive:   cfg.Recursive,
	}

	files, err := field.list(fs)
	if err != nil {
		return nil, err
	}
	if !field.required {
		field.choices = append(field.choices, NewChoice("", "---------"))
	}
	field.choices = append(field.choices, files...)
	return field, nil
}

// MustFilePathField is NewFilePathField that panics on error.
func MustFilePathField(cfg FilePathConfig, opts ...Option) *FilePathField {
	field, err := NewFilePathField(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return field
}

// Kind implements Field.
func (f *FilePathField) Kind() string { return KindFilePath }

// Path returns the listed directory.
func (f *FilePathField) Path() string { return f.path }

func (f *FilePathField) list(fs billy.Filesystem) ([]Choice, error) {
	var choices []Choice
	add := func(full, name string) error {
		if f.match != nil && !f.match.MatchString(name) {
			return nil
		}
		label, err := filepath.Rel(f.path, full)
		if err != nil {
			return err
		}
		choices = append(choices, NewChoice(full, filepath.ToSlash(label)))
		return nil
	}

	if f.recursive {
		err := util.Walk(fs, f.path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			return add(path, info.Name())
		})
		if err != nil {
			return nil, fmt.Errorf("fields: walk %q: %w", f.path, err)
		}
	} else {
		entries, err := fs.ReadDir(f.path)
		if err != nil {
			return nil, fmt.Errorf("fields: list %q: %w", f.path, err)
		}
		for _, entry := range entries {
			if !entry.Mode().IsRegular() {
				continue
			}
			if err := add(fs.Join(f.path, entry.Name()), entry.Name()); err != nil {
				return nil, fmt.Errorf("fields: list %q: %w", f.path, err)
			}
		}
	}

	sort.Slice(choices, func(i, j int) bool {
		return choices[i].Value.(string) < choices[j].Value.(string)
	})
	return choices, nil
}
