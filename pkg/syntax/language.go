package syntax

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keyword is a reserved word. Secondary keywords (types, preprocessor
// directives) are painted with the Keyword2 class.
type Keyword struct {
	Text      string
	Secondary bool
}

// Flags toggles the optional token classes of a language.
type Flags struct {
	Numbers    bool `yaml:"numbers"`
	Strings    bool `yaml:"strings"`
	Separators bool `yaml:"separators"`
}

// Language describes how rows of a file type are classified.
type Language struct {
	Name        string
	FileMatch   []string
	LineComment string
	BlockStart  string
	BlockEnd    string
	Keywords    []Keyword
	Flags       Flags
}

// ParseKeywords converts the textual keyword form into Keywords. A trailing
// '|' marks a secondary keyword, e.g. "int|".
func ParseKeywords(words []string) []Keyword {
	out := make([]Keyword, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.HasSuffix(w, "|") {
			out = append(out, Keyword{Text: strings.TrimSuffix(w, "|"), Secondary: true})
			continue
		}
		out = append(out, Keyword{Text: w})
	}
	return out
}

var allFlags = Flags{Numbers: true, Strings: true, Separators: true}

// C returns the built-in C/C++ definition.
func C() *Language {
	return &Language{
		Name:        "c",
		FileMatch:   []string{".c", ".h", ".cpp"},
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		Keywords: ParseKeywords([]string{
			"switch", "if", "while", "for", "break", "continue", "return", "else",
			"struct", "union", "typedef", "static", "enum", "class", "case",
			"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
			"void|", "include|", "define|",
		}),
		Flags: allFlags,
	}
}

// Go returns the built-in Go definition.
func Go() *Language {
	return &Language{
		Name:        "go",
		FileMatch:   []string{".go"},
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		Keywords: ParseKeywords([]string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var",
			"bool|", "byte|", "error|", "float32|", "float64|", "int|", "int8|",
			"int16|", "int32|", "int64|", "rune|", "string|", "uint|", "uint8|",
			"uint16|", "uint32|", "uint64|", "uintptr|", "any|",
			"nil|", "true|", "false|",
		}),
		Flags: allFlags,
	}
}

// Registry maps filename patterns to languages. Lookup order is
// registration order.
type Registry struct {
	langs []*Language
}

// NewRegistry returns a registry holding the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(C())
	r.Register(Go())
	return r
}

// Register appends lang to the lookup order.
func (r *Registry) Register(lang *Language) {
	if lang == nil {
		return
	}
	r.langs = append(r.langs, lang)
}

// Get returns the language registered under name.
func (r *Registry) Get(name string) (*Language, bool) {
	for _, l := range r.langs {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return nil, false
}

// List returns the registered languages in lookup order.
func (r *Registry) List() []*Language {
	return append([]*Language(nil), r.langs...)
}

// Select returns the first language with a pattern matching filename, or
// nil. Patterns beginning with '.' must equal the extension (everything from
// the first '.' of the base name, or the final extension); other patterns
// match as a substring of the path.
func (r *Registry) Select(filename string) *Language {
	if filename == "" {
		return nil
	}
	base := filepath.Base(filename)
	var ext string
	if i := strings.Index(base, "."); i >= 0 {
		ext = base[i:]
	}
	last := filepath.Ext(base)
	for _, l := range r.langs {
		for _, pat := range l.FileMatch {
			if pat == "" {
				continue
			}
			if pat[0] == '.' {
				if ext == pat || last == pat {
					return l
				}
				continue
			}
			if strings.Contains(filename, pat) {
				return l
			}
		}
	}
	return nil
}

type languageSpec struct {
	Name        string   `yaml:"name"`
	FileMatch   []string `yaml:"filematch"`
	LineComment string   `yaml:"line_comment"`
	BlockStart  string   `yaml:"block_start"`
	BlockEnd    string   `yaml:"block_end"`
	Keywords    []string `yaml:"keywords"`
	Flags       Flags    `yaml:"flags"`
}

type languageFile struct {
	Languages []languageSpec `yaml:"languages"`
}

// ParseLanguages decodes YAML language definitions.
func ParseLanguages(data []byte) ([]*Language, error) {
	var f languageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse languages: %w", err)
	}
	out := make([]*Language, 0, len(f.Languages))
	for i, s := range f.Languages {
		if s.Name == "" {
			return nil, fmt.Errorf("parse languages: entry %d has no name", i)
		}
		if len(s.FileMatch) == 0 {
			return nil, fmt.Errorf("parse languages: %s has no filematch", s.Name)
		}
		if (s.BlockStart == "") != (s.BlockEnd == "") {
			return nil, fmt.Errorf("parse languages: %s needs both block_start and block_end", s.Name)
		}
		out = append(out, &Language{
			Name:        s.Name,
			FileMatch:   s.FileMatch,
			LineComment: s.LineComment,
			BlockStart:  s.BlockStart,
			BlockEnd:    s.BlockEnd,
			Keywords:    ParseKeywords(s.Keywords),
			Flags:       s.Flags,
		})
	}
	return out, nil
}

// LoadRegistry returns the built-in registry extended with the definitions
// in path. An empty path or a missing file yields the built-ins only.
func LoadRegistry(path string) (*Registry, error) {
	r := NewRegistry()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read languages %s: %w", path, err)
	}
	langs, err := ParseLanguages(data)
	if err != nil {
		return nil, err
	}
	for _, l := range langs {
		r.Register(l)
	}
	return r, nil
}
