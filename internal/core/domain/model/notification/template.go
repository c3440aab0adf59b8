package notification

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrTemplate is the sentinel wrapped by every TemplateError.
var ErrTemplate = errors.New("template error")

var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// TemplateError reports a notification that could not be rendered.
type TemplateError struct {
	TemplateID string
	Variable   string
	Cause      error
}

func NewTemplateError(templateID, variable string, cause error) *TemplateError {
	return &TemplateError{TemplateID: templateID, Variable: variable, Cause: cause}
}

func (e *TemplateError) Error() string {
	msg := fmt.Sprintf("%s: template %s", ErrTemplate, e.TemplateID)
	if e.Variable != "" {
		msg += fmt.Sprintf(", variable %s", e.Variable)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return ErrTemplate
}

// Template is a message body with {name} placeholders. Every placeholder is required.
type Template struct {
	ID   string
	Body string
}

// Placeholders returns the variable names referenced by the body, in order of appearance.
func (t Template) Placeholders() []string {
	var names []string
	seen := map[string]struct{}{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Body, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// DefaultTemplates are used when no template is configured for a notification type.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:   string(OrderReady),
			Body: "Your order {order_number} is ready. Total: {total}.",
		},
		{
			ID:   string(OrderServed),
			Body: "Your order {order_number} was served. Thank you! Total paid: {total}.",
		},
	}
}

// Renderer substitutes typed variables into templates.
type Renderer struct {
	printer   *message.Printer
	templates map[string]Template
}

// NewRenderer builds a renderer whose number grouping follows tag.
func NewRenderer(tag language.Tag, templates ...Template) *Renderer {
	r := &Renderer{
		printer:   message.NewPrinter(tag),
		templates: make(map[string]Template, len(templates)),
	}
	for _, t := range templates {
		r.templates[t.ID] = t
	}
	return r
}

// Render fills the template. A missing variable fails with *TemplateError.
func (r *Renderer) Render(templateID string, variables map[string]Variable) (string, error) {
	tmpl, ok := r.templates[templateID]
	if !ok {
		return "", NewTemplateError(templateID, "", errors.New("template is not registered"))
	}

	replacements := make([]string, 0, 2*len(variables))
	for _, name := range tmpl.Placeholders() {
		v, ok := variables[name]
		if !ok {
			return "", NewTemplateError(templateID, name, errors.New("missing required variable"))
		}
		replacements = append(replacements, "{"+name+"}", r.format(v))
	}

	return strings.NewReplacer(replacements...).Replace(tmpl.Body), nil
}

// FormatCurrency renders the integer part of amount with digit grouping and the currency suffix.
func (r *Renderer) FormatCurrency(v Variable) string {
	text := r.printer.Sprintf("%d", v.Amount.IntPart())
	if v.Currency != "" {
		text += " " + v.Currency
	}
	return text
}

// format renders anything that is not a currency as plain text.
func (r *Renderer) format(v Variable) string {
	if v.Format == FormatCurrency {
		return r.FormatCurrency(v)
	}
	return v.Text
}
