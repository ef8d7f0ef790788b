package delay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_LatestScheduleWins(t *testing.T) {
	h := New("longpress")
	first := h.Schedule()
	second := h.Schedule()

	assert.False(t, h.Fire(first), "stale token must not fire")
	assert.True(t, h.Pending())
	assert.True(t, h.Fire(second))
	assert.False(t, h.Pending())
	assert.False(t, h.Fire(second), "a token fires at most once")
}

func TestHandle_CancelDropsPending(t *testing.T) {
	h := New("blur")
	tok := h.Schedule()
	h.Cancel()

	assert.False(t, h.Pending())
	assert.False(t, h.Fire(tok))
}

func TestHandle_TokenOfOtherHandleIgnored(t *testing.T) {
	a, b := New("a"), New("b")
	tok := a.Schedule()
	b.Schedule()
	assert.False(t, b.Fire(tok))
}

func TestHandle_AfterProducesFiredMsg(t *testing.T) {
	h := New("restart")
	cmd := h.After(time.Millisecond)
	require.NotNil(t, cmd)

	msg, ok := cmd().(FiredMsg)
	require.True(t, ok)
	assert.Equal(t, "restart", msg.Token.Name)
	assert.True(t, h.Fire(msg.Token))
}

func TestGroup_CancelAll(t *testing.T) {
	listen, blur := New("listen"), New("blur")
	g := Group{listen, blur}
	lt := listen.Schedule()
	blur.Schedule()

	assert.Same(t, listen, g.Find(lt))
	g.CancelAll()
	assert.False(t, listen.Pending())
	assert.False(t, blur.Pending())
	assert.False(t, listen.Fire(lt))
	assert.Nil(t, g.Find(Token{Name: "other"}))
}
