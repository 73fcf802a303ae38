package ssh

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xssh "golang.org/x/crypto/ssh"
)

func startServer(t *testing.T, h Handler) (*Server, string) {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := xssh.NewSignerFromKey(key)
	require.NoError(t, err)

	srv := NewServer("", signer, h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })
	return srv, l.Addr().String()
}

func dial(t *testing.T, addr string) *xssh.Client {
	t.Helper()
	client, err := xssh.Dial("tcp", addr, &xssh.ClientConfig{
		User:            "tester",
		HostKeyCallback: xssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestServerRejectsSessionsWithoutPty(t *testing.T) {
	called := false
	srv, addr := startServer(t, func(context.Context, tcell.Screen, *slog.Logger) error {
		called = true
		return nil
	})
	before := testutil.ToFloat64(sessionsTotal.WithLabelValues("no_pty"))

	sess, err := dial(t, addr).NewSession()
	require.NoError(t, err)
	out, err := sess.Output("")
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(out), "needs a terminal"), string(out))
	assert.False(t, called)
	assert.Eventually(t, func() bool { return srv.Active() == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(sessionsTotal.WithLabelValues("no_pty")) == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestServerPtySessionEndsOnDisconnect(t *testing.T) {
	opened := make(chan struct{})
	cancelled := make(chan struct{})
	srv, addr := startServer(t, func(ctx context.Context, screen tcell.Screen, _ *slog.Logger) error {
		w, h := screen.Size()
		assert.Equal(t, 80, w)
		assert.Equal(t, 24, h)
		close(opened)
		<-ctx.Done()
		close(cancelled)
		return nil
	})
	before := testutil.ToFloat64(sessionsTotal.WithLabelValues("ok"))

	client := dial(t, addr)
	sess, err := client.NewSession()
	require.NoError(t, err)
	require.NoError(t, sess.RequestPty("xterm", 24, 80, xssh.TerminalModes{}))
	require.NoError(t, sess.Shell())

	select {
	case <-opened:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called for a pty session")
	}
	assert.Equal(t, 1, srv.Active())

	require.NoError(t, client.Close())

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("handler ctx was not cancelled after the client disconnected")
	}
	assert.Eventually(t, func() bool { return srv.Active() == 0 }, 5*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(sessionsTotal.WithLabelValues("ok")) == before+1
	}, 5*time.Second, 5*time.Millisecond)
}

func TestServerRegistry(t *testing.T) {
	srv := NewServer("", nil, nil, nil)
	a := srv.add()
	b := srv.add()
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, srv.Active())

	srv.remove(a)
	assert.Equal(t, 1, srv.Active())
	srv.remove(b)
	assert.Equal(t, 0, srv.Active())
}
