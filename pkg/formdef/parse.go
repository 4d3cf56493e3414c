package formdef

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/internal/loader"
	"github.com/goliatone/go-formfields/pkg/schema"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func definitionValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Parse decodes a JSON or YAML definition and validates it. source names
// the document in errors.
func Parse(data []byte, source string) (*Definition, error) {
	return ParseFormat(data, source, schema.DetectFormat(source, "", data))
}

// ParseFormat is Parse with the encoding already known. The other encoding
// is still tried when the declared one fails.
func ParseFormat(data []byte, source string, format schema.Format) (*Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: %s is empty", source)
	}

	def, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("formdef: parse %s: invalid %s: %w", source, strings.ToUpper(string(format)), err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("formdef: %s: %w", source, err)
	}
	return def, nil
}

func decode(data []byte, format schema.Format) (*Definition, error) {
	decoders := []func([]byte, any) error{json.Unmarshal, yaml.Unmarshal}
	if format == schema.FormatYAML {
		decoders[0], decoders[1] = decoders[1], decoders[0]
	}
	var first error
	for _, unmarshal := range decoders {
		var def Definition
		err := unmarshal(data, &def)
		if err == nil {
			return &def, nil
		}
		if first == nil {
			first = err
		}
	}
	return nil, first
}

// Validate checks every form and field. Errors name the form and field.
func (d *Definition) Validate() error {
	if d == nil || len(d.Forms) == 0 {
		return errors.New("no forms defined")
	}
	v := definitionValidator()
	for _, formName := range sortedNames(d.Forms) {
		if strings.TrimSpace(formName) == "" {
			return errors.New("form with an empty name")
		}
		form := d.Forms[formName]
		if len(form.Fields) == 0 {
			return fmt.Errorf("form %q has no fields", formName)
		}
		seen := make(map[string]struct{}, len(form.Fields))
		for idx, field := range form.Fields {
			label := field.Name
			if label == "" {
				label = fmt.Sprintf("#%d", idx)
			}
			if err := v.Struct(field); err != nil {
				return fmt.Errorf("form %q field %q: %s", formName, label, describeValidation(err))
			}
			if _, dup := seen[field.Name]; dup {
				return fmt.Errorf("form %q field %q: declared twice", formName, label)
			}
			seen[field.Name] = struct{}{}
		}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "FieldDef.")
		if e.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", field, e.Tag()))
	}
	return strings.Join(parts, "; ")
}

// Load reads and parses the definition identified by src.
func Load(ctx context.Context, src schema.Source, opts ...schema.LoaderOption) (*Definition, error) {
	doc, err := loader.New(schema.NewLoaderOptions(opts...)).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("formdef: load %s: %w", locationOf(src), err)
	}
	return ParseFormat(doc.Raw(), doc.Location(), doc.Format())
}

// LoadFS reads and parses one entry of fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Definition, error) {
	return Load(ctx, schema.SourceFromFS(name), schema.WithFileSystem(fsys))
}

// LoadDir merges every .json, .yaml and .yml file under dir in fsys. A form
// defined in two files is an error.
func LoadDir(ctx context.Context, fsys fs.FS, dir string) (*Definition, error) {
	if fsys == nil {
		return nil, errors.New("formdef: filesystem is required")
	}
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && isDefinitionFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("formdef: walk %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("formdef: no definition files under %s", dir)
	}
	sort.Strings(files)

	merged := &Definition{Forms: make(map[string]FormDef)}
	origin := make(map[string]string)
	for _, name := range files {
		def, err := LoadFS(ctx, fsys, name)
		if err != nil {
			return nil, err
		}
		for formName, form := range def.Forms {
			if prev, exists := origin[formName]; exists {
				return nil, fmt.Errorf("formdef: form %q defined in both %s and %s", formName, prev, name)
			}
			origin[formName] = name
			merged.Forms[formName] = form
		}
	}
	return merged, nil
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func locationOf(src schema.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.Location()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
