package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadYamlFile decodes a YAML file into T.
func ReadYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

// WriteYamlFile encodes data as YAML into path, creating the file.
func WriteYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

// ReadFile loads a deck from a file. YAML files (.yml/.yaml) are decoded
// directly; anything else is treated as MCQ text and parsed.
// The returned deck is validated either way.
func ReadFile(path, name string) (Deck, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" || ext == ".yaml" {
		d, err := ReadYamlFile[Deck](path)
		if err != nil {
			return Deck{}, err
		}
		if err := d.Validate(); err != nil {
			return Deck{}, fmt.Errorf("deck file %s: %w", path, err)
		}
		return d, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if err := ValidateContent(string(content)); err != nil {
		return Deck{}, fmt.Errorf("deck file %s: %w", path, err)
	}

	questions := ParseContent(string(content))
	if len(questions) == 0 {
		return Deck{}, fmt.Errorf("deck file %s contains no parseable questions", path)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ext)
	}
	d := New(name, questions)
	if err := d.Validate(); err != nil {
		return Deck{}, fmt.Errorf("deck file %s: %w", path, err)
	}
	return d, nil
}

// Markdown renders the deck into a reviewable markdown document with the
// correct option marked.
func (d Deck) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Name)
	fmt.Fprintf(&b, "%d questions\n\n", len(d.Questions))

	for i, q := range d.Questions {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, q.Question)
		for j, option := range q.Options {
			letter := OptionLetter(j)
			if letter == q.Answer {
				fmt.Fprintf(&b, "- **%s. %s** (answer)\n", letter, option)
			} else {
				fmt.Fprintf(&b, "- %s. %s\n", letter, option)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
