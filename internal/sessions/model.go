package sessions

import (
	"time"

	"whackamole/internal/audio"
	"whackamole/internal/game"
	"whackamole/internal/push"
	"whackamole/internal/wshub"
)

// Session is one player's browser: a game controller with its hub, audio
// gate and event pump. Best score lives inside the game for as long as
// the session does; nothing survives the process.
type Session struct {
	ID        string
	Game      *game.Game
	Hub       *wshub.Hub
	Audio     *audio.Gate
	CreatedAt time.Time

	pump *push.Pump
}

// Close stops the session's round, pump and connections.
func (s *Session) Close() {
	s.Game.Stop()
	s.pump.Stop()
	s.Hub.Close()
}
