package questiongen

import (
	"fmt"
	"strings"

	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

var markers = []string{"A)", "B)", "C)", "D)"}

// Parse turns generated text into a Question of type qt.
//
// The expected shape is a question line, the option lines and a
// "Correct:" line:
//
//	Question: Which planet is largest?
//	A) Mars
//	B) Jupiter
//	C) Venus
//	D) Earth
//	Correct: B
//
// True/false questions use two lines reading True and False, with or
// without letter markers. Parse fails with a *ParseError when the option
// count is wrong or the "Correct:" line is missing. A correct-answer token
// that matches no option falls back to the first option and sets
// LenientMatch.
func Parse(raw string, qt taxonomy.QuestionType) (*Question, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	promptIdx := -1
	var prompt string
	for i, l := range lines {
		// A bare "Question:" label line is not the prompt.
		if p := stripLabel(strings.TrimSpace(l)); p != "" {
			promptIdx, prompt = i, p
			break
		}
	}
	if promptIdx < 0 {
		return nil, &ParseError{Reason: "no question text", Raw: raw}
	}

	var (
		options    []string
		correctTok string
		hasCorrect bool
	)
	for _, l := range lines[promptIdx+1:] {
		line := strings.TrimSpace(l)
		if line == "" {
			continue
		}
		if !hasCorrect && strings.HasPrefix(strings.ToLower(line), "correct:") {
			correctTok = strings.TrimSpace(line[len("correct:"):])
			hasCorrect = true
			continue
		}
		if isOption(line, qt) {
			options = append(options, line)
		}
	}

	if want := qt.OptionCount(); len(options) != want {
		return nil, &ParseError{
			Reason: fmt.Sprintf("found %d options, want %d", len(options), want),
			Raw:    raw,
		}
	}
	if !hasCorrect {
		return nil, &ParseError{Reason: `no "Correct:" line`, Raw: raw}
	}

	correct, ok := matchCorrect(correctTok, options)
	q := &Question{
		Prompt:        prompt,
		Options:       options,
		CorrectAnswer: correct,
		LenientMatch:  !ok,
		Type:          qt,
		Raw:           raw,
	}
	return q, nil
}

// StripMarker returns an option's content without a leading "A) " style
// letter marker.
func StripMarker(option string) string {
	option = strings.TrimSpace(option)
	if hasMarker(option) {
		return strings.TrimSpace(option[2:])
	}
	return option
}

func hasMarker(line string) bool {
	for _, m := range markers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

func isOption(line string, qt taxonomy.QuestionType) bool {
	if qt == taxonomy.TrueFalse {
		v := strings.ToLower(StripMarker(line))
		return v == "true" || v == "false"
	}
	return hasMarker(line)
}

func stripLabel(line string) string {
	const label = "question:"
	if strings.HasPrefix(strings.ToLower(line), label) {
		return strings.TrimSpace(line[len(label):])
	}
	return line
}

// matchCorrect resolves the "Correct:" token to an option. It tries, in
// order: a bare letter such as "B" or "B)", a prefix of the full option
// line, and a prefix of the option content. The bool is false when nothing
// matched and the first option was returned.
func matchCorrect(token string, options []string) (string, bool) {
	tok := strings.ToLower(strings.Trim(strings.TrimSpace(token), `[]"'.`))
	if tok == "" {
		return options[0], false
	}

	if letter := strings.TrimSuffix(tok, ")"); len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'd' {
		marker := strings.ToUpper(letter) + ")"
		for _, o := range options {
			if strings.HasPrefix(o, marker) {
				return o, true
			}
		}
	}

	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(o), tok) {
			return o, true
		}
	}
	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(StripMarker(o)), tok) {
			return o, true
		}
	}
	return options[0], false
}
