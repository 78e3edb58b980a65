package questiongen

import (
	"fmt"

	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

// SystemPrompt is the fixed first message of every conversation.
const SystemPrompt = "You are a helpful assistant that generates quiz questions."

// usedNotice follows every generated question so the model avoids it later.
const usedNotice = "This question has been used. Please generate a different question next time."

const (
	multipleChoiceFormat = "Question: ...\nA) ...\nB) ...\nC) ...\nD) ...\nCorrect: [Correct option letter]"
	trueFalseFormat      = "Question: ...\nTrue\nFalse\nCorrect: [True or False]"
)

// buildUserMessage asks for question number ordinal in the selected format.
func buildUserMessage(sel taxonomy.Selection, ordinal int) string {
	format := multipleChoiceFormat
	if sel.QuestionType == taxonomy.TrueFalse {
		format = trueFalseFormat
	}
	return fmt.Sprintf(
		"Generate 1 unique %s question about %s in %s at %s difficulty level. "+
			"This is question number %d, so make sure it's different from all previous questions. "+
			"Format the question as follows:\n%s",
		sel.QuestionType, sel.SubTopic, sel.GeneralTopic, sel.Difficulty, ordinal, format,
	)
}
