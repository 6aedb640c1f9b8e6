// Package prompt assembles the grounded prompt sent downstream: retrieved
// document contents joined into a context block, substituted together with
// the user's question into a fixed two-slot template.
package prompt

import (
	"fmt"
	"strings"

	"ragbot/ragbot/services/retrieval"
)

// Delimiter separates document contents inside the context block.
const Delimiter = "\n\n---\n\n"

const (
	contextSlot  = "{context}"
	questionSlot = "{question}"
)

// Builder substitutes a context block and a question into its template.
// Build is pure: no I/O, identical inputs give identical output.
type Builder struct {
	template string
}

// NewBuilder validates that the template carries both named slots. A
// malformed template is a startup-time configuration error.
func NewBuilder(template string) (*Builder, error) {
	if !strings.Contains(template, contextSlot) {
		return nil, fmt.Errorf("prompt template missing %s slot", contextSlot)
	}
	if !strings.Contains(template, questionSlot) {
		return nil, fmt.Errorf("prompt template missing %s slot", questionSlot)
	}
	return &Builder{template: template}, nil
}

// Build joins the documents in order into the context block and substitutes
// it with the verbatim question. No documents means an empty context block,
// not an error.
func (b *Builder) Build(docs []retrieval.Document, question string) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	contextBlock := strings.Join(parts, Delimiter)

	out := strings.ReplaceAll(b.template, contextSlot, contextBlock)
	return strings.ReplaceAll(out, questionSlot, question)
}
