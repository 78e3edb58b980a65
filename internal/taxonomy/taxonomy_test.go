package taxonomy

import (
	"errors"
	"slices"
	"testing"
)

func TestGeneralTopics_Order(t *testing.T) {
	want := []string{"Science", "History", "Entertainment", "Sports", "Literature", "Computer Science", "Data Science"}
	got := GeneralTopics()
	if !slices.Equal(got, want) {
		t.Fatalf("GeneralTopics() = %v, want %v", got, want)
	}
}

func TestSubTopics(t *testing.T) {
	tests := []struct {
		topic string
		want  []string
	}{
		{"Science", []string{"Biology", "Astronomy", "Chemistry"}},
		{"History", []string{"Ancient", "Modern", "World Wars"}},
		{"Computer Science", []string{"OS", "DBMS", "System Design", "COA", "CN"}},
		{"data science", []string{"Probability Theory", "Statistics", "Machine Learning"}},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			got, err := SubTopics(tt.topic)
			if err != nil {
				t.Fatalf("SubTopics(%q): %v", tt.topic, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("SubTopics(%q) = %v, want %v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestSubTopics_ReturnsCopy(t *testing.T) {
	got, _ := SubTopics("Sports")
	got[0] = "Curling"
	again, _ := SubTopics("Sports")
	if again[0] != "Football" {
		t.Fatalf("catalogue mutated through returned slice: %v", again)
	}
}

func TestSubTopics_Unknown(t *testing.T) {
	_, err := SubTopics("Scince")
	if !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("expected ErrUnknownTopic, got %v", err)
	}
	var ute *UnknownTopicError
	if !errors.As(err, &ute) {
		t.Fatalf("expected *UnknownTopicError, got %T", err)
	}
	if !slices.Contains(ute.Suggestions, "Science") {
		t.Errorf("suggestions = %v, want to include Science", ute.Suggestions)
	}
}

func TestResolveSubTopic(t *testing.T) {
	got, err := ResolveSubTopic("computer science", "system design")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "System Design" {
		t.Errorf("got %q, want System Design", got)
	}

	_, err = ResolveSubTopic("Science", "Poetry")
	if !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("expected ErrUnknownTopic for subtopic of another topic, got %v", err)
	}
}

func TestResolveDifficulty(t *testing.T) {
	if d, err := ResolveDifficulty(" hard "); err != nil || d != "Hard" {
		t.Errorf("ResolveDifficulty(hard) = %q, %v", d, err)
	}
	if _, err := ResolveDifficulty("Impossible"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		in      string
		want    QuestionType
		wantErr bool
	}{
		{"Multiple Choice", MultipleChoice, false},
		{"mc", MultipleChoice, false},
		{"True/False", TrueFalse, false},
		{"TF", TrueFalse, false},
		{"essay", "", true},
	}
	for _, tt := range tests {
		got, err := ParseQuestionType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseQuestionType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuestionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptionCount(t *testing.T) {
	if MultipleChoice.OptionCount() != 4 {
		t.Errorf("MultipleChoice.OptionCount() = %d", MultipleChoice.OptionCount())
	}
	if TrueFalse.OptionCount() != 2 {
		t.Errorf("TrueFalse.OptionCount() = %d", TrueFalse.OptionCount())
	}
}

func TestDifficultiesAndTypes(t *testing.T) {
	if !slices.Equal(Difficulties(), []string{"Easy", "Medium", "Hard"}) {
		t.Errorf("Difficulties() = %v", Difficulties())
	}
	if !slices.Equal(QuestionTypes(), []QuestionType{MultipleChoice, TrueFalse}) {
		t.Errorf("QuestionTypes() = %v", QuestionTypes())
	}
}
