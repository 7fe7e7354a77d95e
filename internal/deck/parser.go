package deck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Two text formats are accepted for imports.
//
// Pipe format, one question per line:
//
//	Question | Option A | Option B | Option C | Option D | Answer
//
// Block format:
//
//	Question: ...
//	Options:
//	A. ...
//	B. ...
//	Answer: A

var optionLinePattern = regexp.MustCompile(`^[A-D]\.`)

// ParseContent parses MCQ text in either supported format. Lines that do
// not form a complete question are skipped, matching the forgiving
// behavior of the importer UI this replaces.
func ParseContent(content string) []Question {
	if strings.Contains(content, "|") {
		return parsePipeFormat(content)
	}
	return parseBlockFormat(content)
}

func parsePipeFormat(content string) []Question {
	var questions []Question
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 6 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		questions = append(questions, Question{
			ID:       uuid.NewString(),
			Question: parts[0],
			Options:  []string{parts[1], parts[2], parts[3], parts[4]},
			Answer:   strings.ToUpper(parts[5]),
		})
	}
	return questions
}

func parseBlockFormat(content string) []Question {
	var questions []Question

	var questionText, answer string
	var options []string
	collectingOptions := false

	flush := func() {
		if questionText != "" && answer != "" && len(options) > 0 {
			questions = append(questions, Question{
				ID:       uuid.NewString(),
				Question: questionText,
				Options:  append([]string(nil), options...),
				Answer:   answer,
			})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Question:"):
			flush()
			questionText = strings.TrimSpace(strings.TrimPrefix(line, "Question:"))
			answer = ""
			options = nil
			collectingOptions = false
		case strings.HasPrefix(line, "Options:"):
			collectingOptions = true
		case strings.HasPrefix(line, "Answer:"):
			answer = strings.TrimSpace(strings.TrimPrefix(line, "Answer:"))
			collectingOptions = false
		case collectingOptions && optionLinePattern.MatchString(line):
			options = append(options, strings.TrimSpace(line[2:]))
		}
	}
	flush()

	return questions
}

// ValidateContent reports whether the content looks like one of the
// supported formats, with a hint about what is missing when it does not.
func ValidateContent(content string) error {
	lines := nonEmptyLines(content)

	if strings.Contains(content, "|") {
		for _, line := range lines {
			if len(strings.Split(line, "|")) >= 6 {
				return nil
			}
		}
		return fmt.Errorf("invalid pipe format, expected: Question | Option A | Option B | Option C | Option D | Answer")
	}

	if !hasLinePrefix(lines, "Question:") {
		return fmt.Errorf(`no questions found, questions must start with "Question:"`)
	}
	if !hasLinePrefix(lines, "Options:") {
		return fmt.Errorf(`no options found, option sections must start with "Options:"`)
	}
	if !hasLinePrefix(lines, "Answer:") {
		return fmt.Errorf(`no answers found, answers must start with "Answer:"`)
	}
	return nil
}

func nonEmptyLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func hasLinePrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
