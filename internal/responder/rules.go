package responder

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// RuleSet is the YAML document driving the rules responder.
type RuleSet struct {
	Fallback string `yaml:"fallback"`
	Rules    []Rule `yaml:"rules"`
}

// Rule replies with Reply when any keyword occurs in the utterance. A rule
// with Requires only fires when the turn's Outcome meets it; such a rule may
// omit keywords and then matches on the outcome alone.
type Rule struct {
	Name     string   `yaml:"name"`
	Requires string   `yaml:"requires"`
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

type compiledRule struct {
	name     string
	requires string
	keywords []string
	tmpl     *template.Template
}

// Rules is an offline keyword responder.
type Rules struct {
	rules    []compiledRule
	fallback *template.Template
}

// replyData is what rule replies and templates can reference.
type replyData struct {
	Utterance    string
	Memory       string
	Remembered   bool
	AlreadyKnown bool
}

func newReplyData(ctx context.Context, utterance, memoryContext string) replyData {
	o := OutcomeFrom(ctx)
	return replyData{
		Utterance:    utterance,
		Memory:       strings.TrimSpace(memoryContext),
		Remembered:   o.Remembered,
		AlreadyKnown: o.AlreadyKnown,
	}
}

// NewRules loads rules from path, or the embedded defaults when path is empty.
func NewRules(path string) (*Rules, error) {
	data := defaultRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rules file: %w", err)
		}
		data = b
	}
	return ParseRules(data)
}

// ParseRules compiles a YAML rule set.
func ParseRules(data []byte) (*Rules, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if strings.TrimSpace(rs.Fallback) == "" {
		return nil, fmt.Errorf("parse rules: fallback reply is required")
	}

	fb, err := template.New("fallback").Parse(rs.Fallback)
	if err != nil {
		return nil, fmt.Errorf("parse rules: fallback: %w", err)
	}
	out := &Rules{fallback: fb}
	for i, r := range rs.Rules {
		switch r.Requires {
		case "", RequireRemembered, RequireAlreadyKnown:
		default:
			return nil, fmt.Errorf("parse rules: rule %s: unknown requires %q", r.Name, r.Requires)
		}
		if (len(r.Keywords) == 0 && r.Requires == "") || r.Reply == "" {
			return nil, fmt.Errorf("parse rules: rule %d (%s) needs keywords and a reply", i, r.Name)
		}
		t, err := template.New(r.Name).Parse(r.Reply)
		if err != nil {
			return nil, fmt.Errorf("parse rules: rule %s: %w", r.Name, err)
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			kws = append(kws, strings.ToLower(strings.TrimSpace(k)))
		}
		out.rules = append(out.rules, compiledRule{name: r.Name, requires: r.Requires, keywords: kws, tmpl: t})
	}
	return out, nil
}

func (r *Rules) Generate(ctx context.Context, utterance, memoryContext string) (string, error) {
	data := newReplyData(ctx, utterance, memoryContext)
	outcome := OutcomeFrom(ctx)
	lower := strings.ToLower(utterance)
	words := tokenize(lower)

	for _, rule := range r.rules {
		if !outcome.satisfies(rule.requires) {
			continue
		}
		if len(rule.keywords) == 0 {
			return render(rule.tmpl, data)
		}
		for _, kw := range rule.keywords {
			if containsKeyword(lower, words, kw) {
				return render(rule.tmpl, data)
			}
		}
	}
	return render(r.fallback, data)
}

func render(t *template.Template, data replyData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// containsKeyword matches single words on word boundaries and phrases as substrings.
func containsKeyword(lower string, words map[string]bool, kw string) bool {
	if kw == "" {
		return false
	}
	if strings.ContainsFunc(kw, unicode.IsSpace) {
		return strings.Contains(lower, kw)
	}
	return words[kw]
}

func tokenize(s string) map[string]bool {
	out := map[string]bool{}
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	}) {
		out[f] = true
	}
	return out
}
