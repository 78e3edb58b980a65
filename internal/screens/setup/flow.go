package setup

import (
	"github.com/samber/lo"

	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

// TopicPicker starts the choice chain: topic, subtopic, difficulty and
// question type, each applied to sess as soon as it is picked.
func TopicPicker(sess *session.Session, start func() screen.Screen) screen.Screen {
	return NewPicker("Topic", "Pick a topic", taxonomy.GeneralTopics(), func(topic string) (screen.Screen, error) {
		if err := sess.SelectTopic(topic); err != nil {
			return nil, err
		}
		subs, err := taxonomy.SubTopics(topic)
		if err != nil {
			return nil, err
		}
		return subTopicPicker(sess, topic, subs, start), nil
	})
}

func subTopicPicker(sess *session.Session, topic string, subs []string, start func() screen.Screen) screen.Screen {
	return NewPicker(topic, "Pick a subtopic", subs, func(sub string) (screen.Screen, error) {
		if err := sess.SelectSubTopic(sub); err != nil {
			return nil, err
		}
		return difficultyPicker(sess, start), nil
	})
}

func difficultyPicker(sess *session.Session, start func() screen.Screen) screen.Screen {
	return NewPicker("Difficulty", "How hard?", taxonomy.Difficulties(), func(d string) (screen.Screen, error) {
		return typePicker(sess, d, start), nil
	})
}

func typePicker(sess *session.Session, difficulty string, start func() screen.Screen) screen.Screen {
	types := lo.Map(taxonomy.QuestionTypes(), func(t taxonomy.QuestionType, _ int) string {
		return string(t)
	})
	return NewPicker("Format", "Question format", types, func(qt string) (screen.Screen, error) {
		if err := sess.SelectFormat(difficulty, qt); err != nil {
			return nil, err
		}
		return start(), nil
	})
}
