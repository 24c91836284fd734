package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/testutils"
	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T) *compass.Agent {
	t.Helper()
	a, err := compass.New(context.Background(), memory.NewMenuLoader([]byte(testutils.MenuYAML), ".yaml"))
	require.NoError(t, err)
	return a
}

func TestRunChat_Conversation(t *testing.T) {
	a := newTestAgent(t)
	var out bytes.Buffer

	in := strings.NewReader("chocolate brownie\n\n2\n/cart\n/quit\nignored\n")
	err := RunChat(context.Background(), a, ChatOptions{SessionID: "s1", In: in, Out: &out})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Added 2 Chocolate Brownie to your cart.")
	assert.Contains(t, got, "2 x Chocolate Brownie")
	assert.Contains(t, got, ">>> Total $9.98")

	sess, err := a.Session(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.TurnCount, "commands and blank lines are not turns")
}

func TestRunChat_ResetAndFresh(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()
	_, err := a.Handle(ctx, "s1", "chocolate brownie")
	require.NoError(t, err)

	var out bytes.Buffer
	err = RunChat(ctx, a, ChatOptions{SessionID: "s1", Fresh: true, In: strings.NewReader("/cart\n"), Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Cart is empty.")

	out.Reset()
	err = RunChat(ctx, a, ChatOptions{SessionID: "s1", In: strings.NewReader("/reset\n/reset\n"), Out: &out})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out.String(), "Session reset."))
}

func TestRunChat_JSON(t *testing.T) {
	a := newTestAgent(t)
	var out bytes.Buffer

	err := RunChat(context.Background(), a, ChatOptions{JSON: true, In: strings.NewReader("chocolate brownie\n"), Out: &out})
	require.NoError(t, err)

	var reply compass.Reply
	require.NoError(t, json.Unmarshal(out.Bytes(), &reply))
	assert.Equal(t, "cli", reply.SessionID)
	assert.Equal(t, "ask_for_quantity", reply.ResponseKey)
}

func TestRunChat_InvalidInputContinues(t *testing.T) {
	a := newTestAgent(t)
	var out bytes.Buffer

	err := RunChat(context.Background(), a, ChatOptions{In: strings.NewReader("bad \xff\nshow my cart\n"), Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Input rejected")

	sess, err := a.Session(context.Background(), "cli")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.TurnCount)
}

func TestRunChat_Cancelled(t *testing.T) {
	a := newTestAgent(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := RunChat(ctx, a, ChatOptions{In: strings.NewReader("chocolate brownie\n"), Out: &out})
	assert.NoError(t, err)
	assert.Empty(t, out.String())
}
