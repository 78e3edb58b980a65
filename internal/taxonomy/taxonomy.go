// Package taxonomy holds the fixed catalogue of quiz topics, difficulties
// and question formats a player chooses from before a session starts.
package taxonomy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// QuestionType is the answer format a question is generated in.
type QuestionType string

const (
	MultipleChoice QuestionType = "Multiple Choice"
	TrueFalse      QuestionType = "True/False"
)

// OptionCount returns how many options a well-formed question of this type has.
func (q QuestionType) OptionCount() int {
	if q == TrueFalse {
		return 2
	}
	return 4
}

// Topic is a general topic and its ordered subtopics.
type Topic struct {
	Name      string
	SubTopics []string
}

// ErrUnknownTopic is returned for a topic or subtopic outside the catalogue.
var ErrUnknownTopic = errors.New("unknown topic")

// ErrInvalidOption is returned for an unrecognised difficulty or question type.
var ErrInvalidOption = errors.New("invalid option")

// UnknownTopicError reports an unknown topic along with close matches.
type UnknownTopicError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownTopicError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown topic %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unknown topic %q", e.Name)
}

func (e *UnknownTopicError) Unwrap() error { return ErrUnknownTopic }

var topics = []Topic{
	{Name: "Science", SubTopics: []string{"Biology", "Astronomy", "Chemistry"}},
	{Name: "History", SubTopics: []string{"Ancient", "Modern", "World Wars"}},
	{Name: "Entertainment", SubTopics: []string{"Movies", "Music", "TV Shows"}},
	{Name: "Sports", SubTopics: []string{"Football", "Basketball", "Tennis"}},
	{Name: "Literature", SubTopics: []string{"Classic", "Contemporary", "Poetry"}},
	{Name: "Computer Science", SubTopics: []string{"OS", "DBMS", "System Design", "COA", "CN"}},
	{Name: "Data Science", SubTopics: []string{"Probability Theory", "Statistics", "Machine Learning"}},
}

var difficulties = []string{"Easy", "Medium", "Hard"}

var questionTypes = []QuestionType{MultipleChoice, TrueFalse}

// GeneralTopics returns the general topics in display order.
func GeneralTopics() []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.Name
	}
	return out
}

// SubTopics returns the subtopics of topic in display order.
func SubTopics(topic string) ([]string, error) {
	t, ok := lookup(topic)
	if !ok {
		return nil, unknownTopic(topic, GeneralTopics())
	}
	return append([]string(nil), t.SubTopics...), nil
}

// Difficulties returns the difficulty levels, easiest first.
func Difficulties() []string {
	return append([]string(nil), difficulties...)
}

// QuestionTypes returns the supported question formats.
func QuestionTypes() []QuestionType {
	return append([]QuestionType(nil), questionTypes...)
}

// ResolveTopic returns the canonical spelling of topic.
func ResolveTopic(topic string) (string, error) {
	t, ok := lookup(topic)
	if !ok {
		return "", unknownTopic(topic, GeneralTopics())
	}
	return t.Name, nil
}

// ResolveSubTopic returns the canonical spelling of sub within topic.
func ResolveSubTopic(topic, sub string) (string, error) {
	subs, err := SubTopics(topic)
	if err != nil {
		return "", err
	}
	for _, s := range subs {
		if strings.EqualFold(s, strings.TrimSpace(sub)) {
			return s, nil
		}
	}
	return "", unknownTopic(sub, subs)
}

// ResolveDifficulty returns the canonical spelling of d.
func ResolveDifficulty(d string) (string, error) {
	for _, v := range difficulties {
		if strings.EqualFold(v, strings.TrimSpace(d)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: difficulty %q", ErrInvalidOption, d)
}

// ParseQuestionType accepts the display name or a short alias ("mc", "tf").
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiple choice", "multiple-choice", "mc":
		return MultipleChoice, nil
	case "true/false", "true-false", "truefalse", "tf":
		return TrueFalse, nil
	}
	return "", fmt.Errorf("%w: question type %q", ErrInvalidOption, s)
}

func lookup(name string) (Topic, bool) {
	name = strings.TrimSpace(name)
	for _, t := range topics {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Topic{}, false
}

// unknownTopic builds an UnknownTopicError with up to three fuzzy matches.
func unknownTopic(name string, candidates []string) error {
	ranks := fuzzy.RankFindFold(strings.TrimSpace(name), candidates)
	sort.Sort(ranks)

	var suggestions []string
	for _, r := range ranks {
		suggestions = append(suggestions, r.Target)
		if len(suggestions) == 3 {
			break
		}
	}
	return &UnknownTopicError{Name: name, Suggestions: suggestions}
}

// Selection is the topic and format chosen for one session.
type Selection struct {
	GeneralTopic string       `json:"general_topic"`
	SubTopic     string       `json:"sub_topic"`
	Difficulty   string       `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
}

// Complete reports whether every field has been chosen.
func (s Selection) Complete() bool {
	return s.GeneralTopic != "" && s.SubTopic != "" && s.Difficulty != "" && s.QuestionType != ""
}
