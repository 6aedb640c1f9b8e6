package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPromptTemplate is the built-in grounded-prompt template. It carries
// exactly two slots: {context} for the retrieved document block and
// {question} for the user's verbatim message.
const DefaultPromptTemplate = `Answer the question based only on the following context:

{context}

---

Answer the question based on the above context: {question}`

type promptFile struct {
	Template string `yaml:"template"`
}

// LoadPromptTemplate returns the prompt template to use at startup. An empty
// path selects the built-in default. A present-but-unreadable or empty file
// is a configuration error, never a per-turn error.
func LoadPromptTemplate(path string) (string, error) {
	if path == "" {
		return DefaultPromptTemplate, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading prompt file: %w", err)
	}

	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("parsing prompt file %s: %w", path, err)
	}

	if strings.TrimSpace(pf.Template) == "" {
		return "", fmt.Errorf("prompt file %s has an empty template", path)
	}
	return pf.Template, nil
}
