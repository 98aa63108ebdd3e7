//go:build linux

package socketcan

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"

	"backplane/core"
)

// Bus is a raw CAN socket bound to one interface.
//
// Received frames are delivered to the handler through core.Interrupt, the
// same path a hardware receive interrupt takes on the board.
type Bus struct {
	fd int

	mu      sync.Mutex
	handler core.FrameHandler

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

// Open binds a raw CAN socket to ifname. A non-zero receiveID installs an
// acceptance filter so only frames addressed to it are delivered.
func Open(ifname string, receiveID uint32) (*Bus, error) {
	iface, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("socketcan: interface %s: %w", ifname, err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("socketcan: socket: %w", err)
	}

	if receiveID != 0 {
		filter := []unix.CanFilter{{Id: receiveID, Mask: unix.CAN_SFF_MASK}}
		if err := unix.SetsockoptCanRawFilter(fd, unix.SOL_CAN_RAW, unix.CAN_RAW_FILTER, filter); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("socketcan: filter: %w", err)
		}
	}

	// Bounded reads let the reader notice Close
	tv := unix.Timeval{Usec: 100000}
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socketcan: rcvtimeo: %w", err)
	}

	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: iface.Index}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socketcan: bind %s: %w", ifname, err)
	}

	bus := &Bus{
		fd:     fd,
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go bus.reader()
	return bus, nil
}

// OnFrameArrived registers the receive handler. Frames arriving before a
// handler is set are discarded.
func (b *Bus) OnFrameArrived(h core.FrameHandler) {
	b.mu.Lock()
	b.handler = h
	b.mu.Unlock()
}

// TransmitFrame writes one frame to the socket
func (b *Bus) TransmitFrame(f core.Frame) error {
	select {
	case <-b.closed:
		return ErrClosed
	default:
	}

	raw, err := MarshalFrame(f)
	if err != nil {
		return err
	}
	if _, err := unix.Write(b.fd, raw); err != nil {
		return fmt.Errorf("socketcan: write: %w", err)
	}
	return nil
}

func (b *Bus) reader() {
	defer close(b.done)

	raw := make([]byte, FrameSize)
	for {
		select {
		case <-b.closed:
			return
		default:
		}

		n, err := unix.Read(b.fd, raw)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			glog.Errorf("socketcan: read: %v", err)
			return
		}

		f, err := UnmarshalFrame(raw[:n])
		if err != nil {
			glog.V(2).Infof("socketcan: dropped frame: %v", err)
			continue
		}

		b.mu.Lock()
		h := b.handler
		b.mu.Unlock()
		if h != nil {
			core.Interrupt(func() { h(f) })
		}
	}
}

// Close stops the reader and releases the socket
func (b *Bus) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.closed)
		<-b.done
		err = unix.Close(b.fd)
	})
	return err
}
