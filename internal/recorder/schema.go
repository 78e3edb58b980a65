package recorder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/drdavisdfelix/quiz/internal/session"
)

const schemaURL = "schema://quiz-session-record.json"

// ErrInvalidRecord is returned when a session record fails validation.
var ErrInvalidRecord = errors.New("invalid session record")

// ValidationError describes why a record was rejected.
type ValidationError struct {
	SessionID string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid session record %s: %v", e.SessionID, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidRecord, e.Err} }

var compiledSchema = sync.OnceValues(compileSchema)

// Schema returns the JSON schema of session.Record, reflected from the type.
func Schema() *invopop.Schema {
	r := invopop.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return r.Reflect(&session.Record{})
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}

// Validate checks rec against the record schema and its counting rules.
func Validate(rec session.Record) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return &ValidationError{SessionID: rec.SessionID, Err: err}
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{SessionID: rec.SessionID, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ValidationError{SessionID: rec.SessionID, Err: err}
	}

	if rec.TotalQuestions != len(rec.QuestionHistory) {
		return &ValidationError{
			SessionID: rec.SessionID,
			Err:       fmt.Errorf("total_questions %d but %d history entries", rec.TotalQuestions, len(rec.QuestionHistory)),
		}
	}
	correct := 0
	for _, a := range rec.QuestionHistory {
		if a.IsCorrect {
			correct++
		}
	}
	if rec.Score != correct {
		return &ValidationError{
			SessionID: rec.SessionID,
			Err:       fmt.Errorf("score %d but %d correct answers", rec.Score, correct),
		}
	}
	return nil
}
