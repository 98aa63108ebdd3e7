package serial

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPort delivers injected bytes one Read at a time and records writes
type testPort struct {
	rxCh      chan []byte
	closeOnce sync.Once

	mu      sync.Mutex
	written []byte
}

func newTestPort() *testPort {
	return &testPort{rxCh: make(chan []byte, 16)}
}

func (p *testPort) Read(b []byte) (int, error) {
	data, ok := <-p.rxCh
	if !ok {
		return 0, io.EOF
	}
	return copy(b, data), nil
}

func (p *testPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, b...)
	return len(b), nil
}

func (p *testPort) Close() error {
	p.closeOnce.Do(func() { close(p.rxCh) })
	return nil
}

func (p *testPort) Flush() error {
	return nil
}

func (p *testPort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written...)
}

func TestLinkNonBlockingRead(t *testing.T) {
	port := newTestPort()
	link := NewLink(port, 16)
	defer link.Close()

	assert.False(t, link.BytesAvailable())
	_, err := link.ReadByte()
	assert.Equal(t, ErrNoData, err)

	port.rxCh <- []byte{0x41, 0x42}
	require.Eventually(t, link.BytesAvailable, time.Second, time.Millisecond)

	b, err := link.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x41), b)

	require.Eventually(t, link.BytesAvailable, time.Second, time.Millisecond)
	b, err = link.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)

	assert.False(t, link.BytesAvailable())
}

func TestLinkWriteByte(t *testing.T) {
	port := newTestPort()
	link := NewLink(port, 16)
	defer link.Close()

	for _, b := range []byte{0x00, 0x20, 0x01, 0x00} {
		require.NoError(t, link.WriteByte(b))
	}
	assert.Equal(t, []byte{0x00, 0x20, 0x01, 0x00}, port.Written())
}

func TestLinkOverrun(t *testing.T) {
	port := newTestPort()
	link := NewLink(port, 4) // holds 3 bytes
	defer link.Close()

	port.rxCh <- []byte{1, 2, 3, 4, 5}
	require.Eventually(t, func() bool {
		return link.Overruns() == 2
	}, time.Second, time.Millisecond)

	var got []byte
	for link.BytesAvailable() {
		b, err := link.ReadByte()
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestLinkClose(t *testing.T) {
	link := NewLink(newTestPort(), 0)
	require.NoError(t, link.Close())
	require.NoError(t, link.Close())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, DefaultBaud, cfg.Baud)
}

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}
