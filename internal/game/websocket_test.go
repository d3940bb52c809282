package game

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordgamelab/wordgame-backend/internal"
	"github.com/wordgamelab/wordgame-backend/internal/words"
)

func dialTestSession(t *testing.T, gw Gateway, submitter Submitter) *websocket.Conn {
	t.Helper()
	pool, err := words.NewPool([]internal.Word{
		abstractWord(),
		testWord(),
	})
	require.NoError(t, err)
	pool.Seed(1)

	cfg := Config{MaxRounds: 2, RoundSeconds: 60}
	srv := httptest.NewServer(HandleWebSocket(cfg, pool, gw, submitter))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(internal.Message[any]{Type: msgType, Data: data}))
}

// readMessage returns the next non-timer message; timer updates arrive on
// the countdown's own schedule and would make assertions flaky.
func readMessage(t *testing.T, conn *websocket.Conn) internal.Message[json.RawMessage] {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var envelope internal.Message[json.RawMessage]
		require.NoError(t, conn.ReadJSON(&envelope))
		if envelope.Type == "timer_update" {
			continue
		}
		return envelope
	}
}

func decodeData[T any](t *testing.T, envelope internal.Message[json.RawMessage]) T {
	t.Helper()
	var data T
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	return data
}

func TestHandleWebSocket_FullSession(t *testing.T) {
	gw := &fakeGateway{description: "absence of restraint", guess: "cat"}
	sub := &fakeSubmitter{}
	conn := dialTestSession(t, gw, sub)

	sendMessage(t, conn, "start_session", internal.StartSessionData{
		Participant: internal.Participant{Username: "ada", Avatar: "owl"},
	})

	// Round 1: the agent describes, the human guesses. The first snapshot
	// may arrive before or after the agent's description lands.
	var snap internal.RoundSnapshot
	for {
		envelope := readMessage(t, conn)
		require.Equal(t, "round_state", envelope.Type)
		snap = decodeData[internal.RoundSnapshot](t, envelope)
		require.Equal(t, 1, snap.Round)
		assert.Equal(t, internal.RoleGuesser, snap.Role)
		assert.Nil(t, snap.Word)
		if snap.State == internal.StatePlaying {
			break
		}
	}
	assert.Equal(t, "absence of restraint", snap.Description)

	sendMessage(t, conn, "guess", internal.GuessData{Guess: "freedom"})

	var finished internal.RoundFinishedData
	for {
		envelope := readMessage(t, conn)
		if envelope.Type != "round_finished" {
			require.Equal(t, "round_state", envelope.Type)
			continue
		}
		finished = decodeData[internal.RoundFinishedData](t, envelope)
		break
	}
	assert.Equal(t, internal.OutcomeSuccess, finished.Outcome)
	assert.Equal(t, internal.InitialRoundScore, finished.Score)
	assert.False(t, finished.LastRound)
	require.NotNil(t, finished.Word)
	assert.Equal(t, "freedom", finished.Word.Text)

	// Round 2: the human describes, the agent guesses right away.
	sendMessage(t, conn, "next_round", nil)
	envelope := readMessage(t, conn)
	require.Equal(t, "round_state", envelope.Type)
	snap = decodeData[internal.RoundSnapshot](t, envelope)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, internal.RoleQuizmaster, snap.Role)
	require.NotNil(t, snap.Word)
	assert.Equal(t, "cat", snap.Word.Text)

	sendMessage(t, conn, "set_description", internal.SetDescriptionData{Description: "a small furry companion"})

	for {
		envelope = readMessage(t, conn)
		if envelope.Type == "round_finished" {
			break
		}
		require.Equal(t, "round_state", envelope.Type)
	}
	finished = decodeData[internal.RoundFinishedData](t, envelope)
	assert.Equal(t, internal.OutcomeSuccess, finished.Outcome)
	assert.True(t, finished.LastRound)

	envelope = readMessage(t, conn)
	require.Equal(t, "session_complete", envelope.Type)
	complete := decodeData[internal.SessionCompleteData](t, envelope)
	assert.True(t, complete.Submitted)
	assert.Equal(t, 20, complete.Summary.TotalScore)
	assert.Equal(t, "ada", complete.Summary.Username)
}

func TestHandleWebSocket_RequiresStartSession(t *testing.T) {
	conn := dialTestSession(t, &fakeGateway{}, nil)

	sendMessage(t, conn, "guess", internal.GuessData{Guess: "cat"})

	envelope := readMessage(t, conn)
	require.Equal(t, "error", envelope.Type)
	errData := decodeData[internal.ErrorData](t, envelope)
	assert.True(t, errData.Fatal)
}

func TestHandleWebSocket_RequiresUsername(t *testing.T) {
	conn := dialTestSession(t, &fakeGateway{}, nil)

	sendMessage(t, conn, "start_session", internal.StartSessionData{})

	envelope := readMessage(t, conn)
	require.Equal(t, "error", envelope.Type)
	errData := decodeData[internal.ErrorData](t, envelope)
	assert.True(t, errData.Fatal)
	assert.Contains(t, errData.Message, "username")
}

func TestDecodeCommand(t *testing.T) {
	raw := func(v any) json.RawMessage {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}

	cmd, err := decodeCommand(internal.Message[json.RawMessage]{
		Type: "set_description",
		Data: raw(internal.SetDescriptionData{Description: "hello"}),
	})
	require.NoError(t, err)
	assert.Equal(t, CmdSetDescription{Text: "hello"}, cmd)

	cmd, err = decodeCommand(internal.Message[json.RawMessage]{
		Type: "guess",
		Data: raw(internal.GuessData{Guess: "cat"}),
	})
	require.NoError(t, err)
	assert.Equal(t, CmdGuess{Text: "cat"}, cmd)

	cmd, err = decodeCommand(internal.Message[json.RawMessage]{
		Type: "use_hint",
		Data: raw(internal.UseHintData{Hint: internal.HintWordLength}),
	})
	require.NoError(t, err)
	assert.Equal(t, CmdUseHint{Hint: internal.HintWordLength}, cmd)

	cmd, err = decodeCommand(internal.Message[json.RawMessage]{Type: "next_round"})
	require.NoError(t, err)
	assert.Equal(t, CmdNextRound{}, cmd)

	_, err = decodeCommand(internal.Message[json.RawMessage]{Type: "dance"})
	assert.ErrorContains(t, err, "unknown message type")
}
