package responder

import (
	"context"
	"fmt"
	"os"
	"text/template"
)

const defaultTemplate = `{{if .Remembered}}Noted, I'll remember that. {{else if .AlreadyKnown}}I already have that noted. {{end}}{{if .Memory}}Thanks for your message. Here is what I keep in mind about you:
{{.Memory}}

How can I help with "{{.Utterance}}"?{{else}}Thanks for your message. How can I help with "{{.Utterance}}"?{{end}}`

// Template renders a single text/template reply with .Utterance, .Memory,
// .Remembered and .AlreadyKnown.
type Template struct {
	tmpl *template.Template
}

// NewTemplate loads the template at path, or the built-in one when path is empty.
func NewTemplate(path string) (*Template, error) {
	text := defaultTemplate
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template file: %w", err)
		}
		text = string(b)
	}
	t, err := template.New("reply").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{tmpl: t}, nil
}

func (t *Template) Generate(ctx context.Context, utterance, memoryContext string) (string, error) {
	return render(t.tmpl, newReplyData(ctx, utterance, memoryContext))
}
