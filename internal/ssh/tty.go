// Package ssh serves terminal screens over gliderlabs SSH sessions.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty on top of an SSH channel. Each connected
// client gets its own SessionTty and screen.
type SessionTty struct {
	conn io.ReadWriteCloser

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell

	winCh     <-chan gossh.Window
	watchOnce sync.Once
}

// NewSessionTty wraps conn as a tcell Tty. win is the initial window size;
// winCh delivers later resizes and is drained until it is closed.
func NewSessionTty(conn io.ReadWriteCloser, win gossh.Window, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{conn: conn, window: win, winCh: winCh}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.conn.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.conn.Write(b) }
func (t *SessionTty) Close() error                { return t.conn.Close() }

// Start, Stop and Drain are no-ops: the channel is opened and closed by
// the SSH server, and writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb to run after every window change. A nil cb
// unregisters. The channel watcher is started on the first call only.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.watchOnce.Do(func() {
		if t.winCh != nil {
			go t.watch()
		}
	})
}

func (t *SessionTty) watch() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.cb
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
