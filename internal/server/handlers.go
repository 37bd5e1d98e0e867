package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"whackamole/internal/sessions"
	"whackamole/internal/wshub"
)

const sessionCookie = "session_id"

type Server struct {
	Sessions *sessions.Store
	Log      zerolog.Logger
}

type stateResponse struct {
	Phase     string   `json:"phase"`
	Score     int      `json:"score"`
	Best      int      `json:"best"`
	Remaining int      `json:"remaining"`
	Slots     []string `json:"slots"`
	Muted     bool     `json:"muted"`
}

// getSession resolves the current session from the session_id cookie.
func (s *Server) getSession(r *http.Request) *sessions.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	return s.Sessions.Get(cookie.Value)
}

// ensureSession resolves the cookie session or creates a fresh one.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) *sessions.Session {
	if sess := s.getSession(r); sess != nil {
		return sess
	}
	sess := s.Sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) stateOf(sess *sessions.Session) stateResponse {
	snap := sess.Game.Snapshot()
	slots := make([]string, len(snap.Slots))
	for i, st := range snap.Slots {
		slots[i] = st.String()
	}
	return stateResponse{
		Phase:     string(snap.Phase),
		Score:     snap.Score,
		Best:      snap.Best,
		Remaining: snap.Remaining,
		Slots:     slots,
		Muted:     sess.Audio.Muted(),
	}
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	// Always rotate: a new session means a clean slate, best score included.
	if old := s.getSession(r); old != nil {
		s.Sessions.Delete(old.ID)
	}
	sess := s.Sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	sess.Game.Start()
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	sess.Game.Stop()
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	on, err := strconv.ParseBool(r.FormValue("on"))
	if err != nil {
		http.Error(w, "invalid mute flag", http.StatusBadRequest)
		return
	}
	sess.Audio.SetMuted(on)
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Log.Debug().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	client := &wshub.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 32),
	}
	sess.Hub.Register(client)
	defer sess.Hub.Unregister(client.ID)

	ctx := r.Context()
	go client.WritePump(ctx)

	s.sendCatchUp(sess, client)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Log.Debug().Err(err).Msg("bad client message")
			continue
		}
		switch msg.Type {
		case "hit":
			sess.Game.RegisterHit(msg.Slot, msg.Trusted)
		case "start":
			sess.Game.Start()
		case "stop":
			sess.Game.Stop()
		case "mute":
			sess.Audio.SetMuted(msg.On)
		default:
			s.Log.Debug().Str("type", msg.Type).Msg("unknown client message")
		}
	}
}

// sendCatchUp pushes the full current state to one newly connected
// client, in the same wire format the pump uses.
func (s *Server) sendCatchUp(sess *sessions.Session, client *wshub.Client) {
	snap := sess.Game.Snapshot()

	msgs := []wshub.ServerMessage{
		{Type: "phase", Phase: string(snap.Phase)},
		{Type: "score", Score: snap.Score, Best: snap.Best},
		{Type: "tick", Remaining: snap.Remaining},
	}
	for i, st := range snap.Slots {
		msgs = append(msgs, wshub.ServerMessage{Type: "slot", Slot: i, State: st.String()})
	}

	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			s.Log.Error().Err(err).Msg("marshal catch-up message")
			return
		}
		select {
		case client.Send <- data:
		default:
			return // client already backed up
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
