package serial

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"backplane/protocol"
)

// DefaultRxBufferSize matches a small UART receive ring
const DefaultRxBufferSize = 256

// ErrNoData is returned by ReadByte when nothing has been received
var ErrNoData = errors.New("serial: no data available")

// readBackoff is how long the reader waits after an empty read
const readBackoff = time.Millisecond

// Link adapts a blocking Port to the non-blocking byte link the backplane
// core polls. A reader goroutine drains the port into a receive ring;
// bytes arriving while the ring is full are dropped and counted, as a UART
// overrun would.
type Link struct {
	port Port

	mu       sync.Mutex
	rx       *protocol.FifoBuffer
	overruns uint32

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

// NewLink starts reading port into a receive ring of rxSize bytes
func NewLink(port Port, rxSize int) *Link {
	if rxSize <= 1 {
		rxSize = DefaultRxBufferSize
	}
	l := &Link{
		port:   port,
		rx:     protocol.NewFifoBuffer(rxSize),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.readerLoop()
	return l
}

func (l *Link) readerLoop() {
	defer close(l.done)

	buf := make([]byte, 64)
	for {
		n, err := l.port.Read(buf)
		if n > 0 {
			l.mu.Lock()
			written := l.rx.Write(buf[:n])
			l.overruns += uint32(n - written)
			l.mu.Unlock()
			if written < n {
				glog.V(1).Infof("serial rx overrun, dropped %d bytes", n-written)
			}
		}

		select {
		case <-l.closed:
			return
		default:
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				glog.Warningf("serial read: %v", err)
			}
			time.Sleep(readBackoff)
			continue
		}
		if n == 0 {
			// read timeout
			time.Sleep(readBackoff)
		}
	}
}

// BytesAvailable reports whether ReadByte has data
func (l *Link) BytesAvailable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.rx.IsEmpty()
}

// ReadByte returns the oldest received byte or ErrNoData
func (l *Link) ReadByte() (byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.rx.PopByte()
	if !ok {
		return 0, ErrNoData
	}
	return b, nil
}

// WriteByte sends b to the port
func (l *Link) WriteByte(b byte) error {
	_, err := l.port.Write([]byte{b})
	return err
}

// Overruns returns how many received bytes were dropped
func (l *Link) Overruns() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.overruns
}

// Close closes the port and waits for the reader to exit
func (l *Link) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.port.Close()
		<-l.done
	})
	return err
}
