package spectator

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/briscola/internal/bot"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(NewServer("", hub, quietLogger()).Handler())
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func playGame(t *testing.T, hub *Hub) *game.Result {
	t.Helper()
	bus := game.NewEventBus()
	bus.Subscribe(hub)
	g, err := game.New(
		[game.NumSeats]game.Player{bot.NewLowestBot("alice"), bot.NewLowestBot("bob")},
		game.WithDeck(deck.FromCards(deck.CanonicalCards())),
		game.WithLeader(game.Seat0),
		game.WithGameID("feed"),
		game.WithEventBus(bus),
	)
	require.NoError(t, err)
	result, err := g.Play()
	require.NoError(t, err)
	return result
}

func TestSpectatorReceivesWelcome(t *testing.T) {
	hub, url := startServer(t)
	conn := dial(t, url)

	msg := readMessage(t, conn)
	require.Equal(t, TypeWelcome, msg.Type)

	var data WelcomeData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	_, err := uuid.Parse(data.ClientID)
	assert.NoError(t, err)
	assert.Equal(t, 1, hub.Count())
}

func TestSpectatorStreamsGame(t *testing.T) {
	hub, url := startServer(t)
	conn := dial(t, url)
	require.Equal(t, TypeWelcome, readMessage(t, conn).Type)

	result := playGame(t, hub)

	start := readMessage(t, conn)
	require.Equal(t, TypeGameStart, start.Type)
	var startData SnapshotData
	require.NoError(t, json.Unmarshal(start.Data, &startData))
	assert.Equal(t, "feed", startData.Snapshot.GameID)
	assert.Equal(t, deck.MustParseCard("10s"), startData.Snapshot.TrumpCard)
	assert.Nil(t, startData.Trick)

	for i := 1; i <= game.TricksPerGame; i++ {
		msg := readMessage(t, conn)
		require.Equal(t, TypeTrick, msg.Type)
		var data SnapshotData
		require.NoError(t, json.Unmarshal(msg.Data, &data))
		require.NotNil(t, data.Trick)
		assert.Equal(t, i, data.Trick.Number)
		assert.Equal(t, i, data.Snapshot.Trick)
	}

	end := readMessage(t, conn)
	require.Equal(t, TypeGameEnd, end.Type)
	var endData GameEndData
	require.NoError(t, json.Unmarshal(end.Data, &endData))
	assert.Equal(t, result.Scores, endData.Result.Scores)
}

func TestLateSpectatorCatchesUp(t *testing.T) {
	hub, url := startServer(t)
	playGame(t, hub)

	conn := dial(t, url)
	require.Equal(t, TypeWelcome, readMessage(t, conn).Type)
	require.Equal(t, TypeGameStart, readMessage(t, conn).Type)
	for i := 0; i < game.TricksPerGame; i++ {
		require.Equal(t, TypeTrick, readMessage(t, conn).Type)
	}
	require.Equal(t, TypeGameEnd, readMessage(t, conn).Type)
}

func TestSpectatorDisconnectUnregisters(t *testing.T) {
	hub, url := startServer(t)
	conn := dial(t, url)
	require.Equal(t, TypeWelcome, readMessage(t, conn).Type)
	require.Equal(t, 1, hub.Count())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHealth(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(NewServer("", hub, quietLogger()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestMessageForEventAbort(t *testing.T) {
	msg, err := messageForEvent(game.NewGameAbortEvent("g1", game.ErrContractViolation))
	require.NoError(t, err)
	require.Equal(t, TypeGameAbort, msg.Type)

	var data GameAbortData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "g1", data.GameID)
	assert.Equal(t, game.ErrContractViolation.Error(), data.Error)
}

// drain returns every message queued on a connection that was never started
func drain(conn *Connection) []*Message {
	var msgs []*Message
	for {
		select {
		case msg := <-conn.send:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestRegisterDuringGameSeesEachMessageOnce(t *testing.T) {
	hub := NewHub(quietLogger())

	const spectators = 50
	conns := make([]*Connection, spectators)
	for i := range conns {
		conns[i] = NewConnection(nil, quietLogger())
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, conn := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_ = hub.Register(conn)
		}()
	}

	close(start)
	playGame(t, hub)
	wg.Wait()

	for _, conn := range conns {
		msgs := drain(conn)
		require.NotEmpty(t, msgs)
		assert.Equal(t, TypeWelcome, msgs[0].Type)
		assert.Equal(t, TypeGameEnd, msgs[len(msgs)-1].Type)

		seen := make(map[*Message]bool, len(msgs))
		lastTrick := 0
		for _, msg := range msgs[1:] {
			require.False(t, seen[msg], "client %s received a %s message twice", conn.ID(), msg.Type)
			seen[msg] = true

			if msg.Type == TypeTrick {
				var data SnapshotData
				require.NoError(t, json.Unmarshal(msg.Data, &data))
				require.NotNil(t, data.Trick)
				assert.Greater(t, data.Trick.Number, lastTrick)
				lastTrick = data.Trick.Number
			}
		}
	}
	assert.Equal(t, spectators, hub.Count())
}
