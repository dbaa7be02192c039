package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func NewTemplate() *Template {
	return &Template{cache: make(map[string]*template.Template)}
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
// Each file is parsed once and reused.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	blocks := make([]*bytes.Buffer, 3)
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		blocks[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(blocks[i], block, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s in %s: %w", block, name, err)
		}
	}

	return blocks[0], blocks[1], blocks[2], nil
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.cache[name]; ok {
		return t, nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}
	tp.cache[name] = t

	return t, nil
}
