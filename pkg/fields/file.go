package fields

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"unicode/utf8"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// UploadedFile is a submitted file. Content is held in memory unless the
// file was built from a multipart header.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string

	content []byte
	header  *multipart.FileHeader
}

// NewUploadedFile returns an in-memory upload.
func NewUploadedFile(name string, content []byte) *UploadedFile {
	return &UploadedFile{
		Name:    name,
		Size:    int64(len(content)),
		content: append([]byte(nil), content...),
	}
}

// FromFileHeader wraps a multipart upload.
func FromFileHeader(header *multipart.FileHeader) *UploadedFile {
	if header == nil {
		return nil
	}
	return &UploadedFile{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		header:      header,
	}
}

// Truthy reports whether a file name was submitted.
func (u *UploadedFile) Truthy() bool {
	return u != nil && u.Name != ""
}

// Open returns a reader over the file content.
func (u *UploadedFile) Open() (io.ReadCloser, error) {
	if u == nil {
		return nil, fmt.Errorf("fields: open nil upload")
	}
	if u.header != nil {
		f, err := u.header.Open()
		if err != nil {
			return nil, fmt.Errorf("fields: open upload %q: %w", u.Name, err)
		}
		return f, nil
	}
	return io.NopCloser(bytes.NewReader(u.content)), nil
}

// String returns the file name.
func (u *UploadedFile) String() string {
	if u == nil {
		return ""
	}
	return u.Name
}

// FileConfig bounds a FileField.
type FileConfig struct {
	// MaxLength limits the file name, in characters.
	MaxLength *int
}

// FileField accepts an *UploadedFile or *multipart.FileHeader. When no new
// file is submitted the previously stored value passed as initial is kept.
type FileField struct {
	Base
	maxLength *int
}

// NewFileField constructs a FileField.
func NewFileField(cfg FileConfig, opts ...Option) *FileField {
	return &FileField{
		Base: newBase(map[string]string{
			CodeInvalid:   "No file was submitted. Check the encoding type on the form.",
			CodeEmpty:     "The submitted file is empty.",
			CodeMaxLength: "Ensure this filename has at most {max} characters (it has {length}).",
		}, opts),
		maxLength: cfg.MaxLength,
	}
}

// Kind implements Field.
func (f *FileField) Kind() string { return KindFile }

// Clean implements Field with no initial value.
func (f *FileField) Clean(value any) (any, error) {
	return f.CleanWithInitial(value, nil)
}

// CleanWithInitial cleans data, falling back to initial when no file was
// submitted.
func (f *FileField) CleanWithInitial(data, initial any) (any, error) {
	subject := data
	if textconv.Truthy(initial) {
		subject = initial
	}
	if err := f.checkRequired(subject); err != nil {
		return nil, err
	}
	if !f.required && textconv.IsEmpty(data) {
		return nil, nil
	}
	if !textconv.Truthy(data) && textconv.Truthy(initial) {
		return initial, nil
	}

	var upload *UploadedFile
	switch v := data.(type) {
	case *UploadedFile:
		upload = v
	case *multipart.FileHeader:
		upload = FromFileHeader(v)
	}
	if upload == nil {
		return nil, f.fail(CodeInvalid)
	}

	if length := utf8.RuneCountInString(upload.Name); f.maxLength != nil && length > *f.maxLength {
		return nil, f.fail(CodeMaxLength, "max", *f.maxLength, "length", length)
	}
	if upload.Name == "" {
		return nil, f.fail(CodeInvalid)
	}
	if upload.Size == 0 {
		return nil, f.fail(CodeEmpty)
	}
	return upload, nil
}
