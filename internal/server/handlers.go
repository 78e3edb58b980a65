package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

type topicResponse struct {
	Name      string   `json:"name"`
	SubTopics []string `json:"sub_topics"`
}

type catalogueResponse struct {
	Topics        []topicResponse         `json:"topics"`
	Difficulties  []string                `json:"difficulties"`
	QuestionTypes []taxonomy.QuestionType `json:"question_types"`
}

type participantRequest struct {
	Region   string `json:"region"`
	AgeGroup string `json:"age_group"`
}

type configureRequest struct {
	GeneralTopic string `json:"general_topic"`
	SubTopic     string `json:"sub_topic"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Record session.AnswerRecord `json:"record"`
	State  session.View         `json:"state"`
}

type tickResponse struct {
	session.TickResult
	State session.View `json:"state"`
}

type endResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

type timerFrame struct {
	session.TickResult
	Error string `json:"error,omitempty"`
	Ended bool   `json:"ended,omitempty"`
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTopics(w http.ResponseWriter, _ *http.Request) {
	topics := lo.Map(taxonomy.GeneralTopics(), func(name string, _ int) topicResponse {
		subs, _ := taxonomy.SubTopics(name)
		return topicResponse{Name: name, SubTopics: subs}
	})
	writeJSON(w, http.StatusOK, catalogueResponse{
		Topics:        topics,
		Difficulties:  taxonomy.Difficulties(),
		QuestionTypes: taxonomy.QuestionTypes(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs.Snapshot())
}

func (s *Server) handleParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := qs.SetParticipant(req.Region, req.AgeGroup); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs.Snapshot())
}

// handleConfigure applies whichever choices the request carries, in
// topic, subtopic, format order, so clients can configure step by step.
func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if req.GeneralTopic != "" {
		if err := qs.SelectTopic(req.GeneralTopic); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.SubTopic != "" {
		if err := qs.SelectSubTopic(req.SubTopic); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.Difficulty != "" || req.QuestionType != "" {
		if err := qs.SelectFormat(req.Difficulty, req.QuestionType); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, qs.Snapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := qs.Start(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs.Snapshot())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := qs.Answer(r.Context(), req.Answer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Record: rec, State: qs.Snapshot()})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := qs.Skip(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Record: rec, State: qs.Snapshot()})
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := qs.Tick(r.Context(), s.clock.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickResponse{TickResult: res, State: qs.Snapshot()})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Recording must not be cut short by the client hanging up.
	msg, err := qs.End(context.WithoutCancel(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endResponse{Message: msg, Summary: qs.ScoreSummary()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(qs.ScoreSummary()))
}

// handleTimer streams tick frames over a websocket until the session ends
// or the client disconnects.
func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request) {
	qs, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client sends nothing; a read error means it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = s.driver.Run(ctx, qs, func(res session.TickResult, tickErr error) {
		frame := timerFrame{TickResult: res}
		if tickErr != nil {
			frame.Error = tickErr.Error()
		}
		if err := conn.WriteJSON(frame); err != nil {
			cancel()
		}
	})
	if err == nil {
		conn.WriteJSON(timerFrame{Ended: true})
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
	}
}
