package game

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/wordgamelab/wordgame-backend/internal"
	"github.com/wordgamelab/wordgame-backend/internal/words"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsNotifier writes match notifications to the socket as {type, data}
// envelopes. Writes are serialized because the match loop and the read
// loop can both emit.
type wsNotifier struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (n *wsNotifier) send(msgType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.conn.WriteJSON(internal.Message[any]{Type: msgType, Data: data}); err != nil {
		log.Printf("[wsNotifier] write failed: %v", err)
	}
}

func (n *wsNotifier) RoundState(snap internal.RoundSnapshot)          { n.send("round_state", snap) }
func (n *wsNotifier) TimerUpdate(data internal.TimerUpdateData)       { n.send("timer_update", data) }
func (n *wsNotifier) RoundFinished(data internal.RoundFinishedData)   { n.send("round_finished", data) }
func (n *wsNotifier) SessionComplete(data internal.SessionCompleteData) {
	n.send("session_complete", data)
}
func (n *wsNotifier) Error(data internal.ErrorData) { n.send("error", data) }

// HandleWebSocket upgrades the connection and runs one game session over
// it. The first client message must be start_session; afterwards the read
// loop only posts commands into the match inbox and never touches round
// state directly.
func HandleWebSocket(cfg Config, pool *words.Pool, gateway Gateway, submitter Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[HandleWebSocket] upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		notifier := &wsNotifier{conn: conn}

		// The session begins with exactly one start_session message.
		var start internal.Message[internal.StartSessionData]
		if err := conn.ReadJSON(&start); err != nil || start.Type != "start_session" {
			notifier.Error(internal.ErrorData{Message: "expected start_session message", Fatal: true})
			return
		}
		if start.Data.Participant.Username == "" {
			notifier.Error(internal.ErrorData{Message: "username is required", Fatal: true})
			return
		}

		sessionWords, err := pool.DrawSession(cfg.MaxRounds)
		if err != nil {
			notifier.Error(internal.ErrorData{Message: err.Error(), Fatal: true})
			return
		}
		match, err := NewMatch(cfg, start.Data.Participant, sessionWords, gateway, notifier, submitter)
		if err != nil {
			notifier.Error(internal.ErrorData{Message: err.Error(), Fatal: true})
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go match.Run(ctx)
		log.Printf("[HandleWebSocket] match %s started for %q", match.ID, start.Data.Participant.Username)

		for {
			var envelope internal.Message[json.RawMessage]
			if err := conn.ReadJSON(&envelope); err != nil {
				log.Printf("[HandleWebSocket] match %s: connection closed: %v", match.ID, err)
				return
			}
			cmd, err := decodeCommand(envelope)
			if err != nil {
				notifier.Error(internal.ErrorData{Message: err.Error()})
				continue
			}
			match.Post(cmd)
		}
	}
}

// decodeCommand maps a client envelope onto a match command.
func decodeCommand(envelope internal.Message[json.RawMessage]) (any, error) {
	switch envelope.Type {
	case "set_description":
		var data internal.SetDescriptionData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		return CmdSetDescription{Text: data.Description}, nil
	case "guess":
		var data internal.GuessData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		return CmdGuess{Text: data.Guess}, nil
	case "use_hint":
		var data internal.UseHintData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		return CmdUseHint{Hint: data.Hint}, nil
	case "next_round":
		return CmdNextRound{}, nil
	default:
		return nil, errUnknownMessage(envelope.Type)
	}
}

type errUnknownMessage string

func (e errUnknownMessage) Error() string { return "unknown message type: " + string(e) }
