package http

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// DefaultGreeting is spoken when a call starts.
const DefaultGreeting = "Thank you for calling Compass. What would you like to order?"

const notHeard = "Sorry, I didn't catch that. Could you repeat?"

// twimlResponse is the subset of TwiML the webhook emits.
type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Say     []string     `xml:"Say,omitempty"`
	Gather  *twimlGather `xml:"Gather,omitempty"`
}

type twimlGather struct {
	Input         string `xml:"input,attr"`
	Action        string `xml:"action,attr"`
	Method        string `xml:"method,attr"`
	Timeout       int    `xml:"timeout,attr"`
	SpeechTimeout string `xml:"speechTimeout,attr"`
	BargeIn       bool   `xml:"bargeIn,attr"`
	Say           string `xml:"Say,omitempty"`
}

func (s *Server) gather(say string) *twimlGather {
	return &twimlGather{
		Input:         "speech",
		Action:        s.voiceRoute,
		Method:        http.MethodPost,
		Timeout:       15,
		SpeechTimeout: "auto",
		BargeIn:       true,
		Say:           say,
	}
}

// Voice handles the POST /voice request that starts a call.
// A call that already has turns gets an empty document.
func (s *Server) Voice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	callSID := strings.TrimSpace(r.PostForm.Get("CallSid"))
	if callSID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("CallSid is required"))
		return
	}

	sess, err := s.Agent.Session(r.Context(), callSID)
	switch {
	case err == nil && sess.TurnCount > 0:
		s.writeTwiML(w, nil)
		return
	case err != nil && !errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("call started", "session_id", callSID)
	s.writeTwiML(w, &twimlResponse{Gather: s.gather(s.greeting)})
}

// ProcessSpeech handles the POST /process_speech callback carrying the
// caller's transcribed speech.
func (s *Server) ProcessSpeech(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	callSID := strings.TrimSpace(r.PostForm.Get("CallSid"))
	if callSID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("CallSid is required"))
		return
	}
	speech := strings.TrimSpace(r.PostForm.Get("SpeechResult"))

	if speech == "" {
		s.writeTwiML(w, &twimlResponse{Say: []string{notHeard}, Gather: s.gather("")})
		return
	}

	reply, err := s.Agent.Handle(r.Context(), callSID, speech)
	if errors.Is(err, domain.ErrInvalidInput) {
		s.writeTwiML(w, &twimlResponse{Say: []string{notHeard}, Gather: s.gather("")})
		return
	}
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.logger.Debug("caller reply", "session_id", callSID, "response_key", reply.ResponseKey)
	s.writeTwiML(w, &twimlResponse{Say: []string{reply.Text}, Gather: s.gather("")})
}

// writeTwiML writes doc, or an empty body when doc is nil.
func (s *Server) writeTwiML(w http.ResponseWriter, doc *twimlResponse) {
	w.Header().Set("Content-Type", "application/xml")
	if doc == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	w.Write(out)
}
