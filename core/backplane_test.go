package core

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func newTestBackplane(input []byte) (*Backplane, *fakeLink, *fakeTransceiver, *fakeSelector) {
	link := &fakeLink{input: input}
	xcvr := &fakeTransceiver{}
	sel := &fakeSelector{}
	return New(DefaultConfig(), link, xcvr, sel), link, xcvr, sel
}

func TestBackplaneStartReportsStatus(t *testing.T) {
	testCases := []struct {
		name     string
		initErr  error
		expected string
	}{
		{"init ok", nil, "Can Init SUCCESS!\n\r"},
		{"init failed", errors.New("no response from controller"), "Can Init FAILURE!\n\r"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bp, link, _, sel := newTestBackplane(nil)

			bp.Start(tc.initErr)

			if string(link.written) != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, link.written)
			}
			// Sampling starts regardless of the bus
			if sel.starts != 1 {
				t.Errorf("Expected sampler started, got %d conversions", sel.starts)
			}
		})
	}
}

func TestBackplanePollIdle(t *testing.T) {
	bp, link, xcvr, _ := newTestBackplane(nil)

	if bp.Poll() {
		t.Error("Poll with nothing pending should report no work")
	}
	if len(link.written) != 0 || len(xcvr.sent) != 0 {
		t.Error("Idle poll must not produce output")
	}
}

func TestBackplanePollRelaysAllPaths(t *testing.T) {
	bp, link, xcvr, _ := newTestBackplane([]byte{0x41})
	bp.Start(nil)
	link.written = nil

	Interrupt(func() {
		bp.Mailbox().Produce(Frame{Address: 0x123, Length: 2, Payload: [8]byte{0xAA, 0xBB}})
	})
	for _, raw := range []uint16{0, 1023, 0, 1023} {
		Interrupt(func() { bp.Sampler().OnConversionComplete(raw) })
	}

	if !bp.Poll() {
		t.Fatal("Poll should report work")
	}

	if len(xcvr.sent) != 1 || xcvr.sent[0].Payload[0] != 0x41 {
		t.Errorf("Expected ingress byte forwarded, got %+v", xcvr.sent)
	}

	// Frame record first, then telemetry, each contiguous
	expected := []byte{0x01, 0x23, 0x00, 0x02, 0xAA, 0xBB, 0, 50, 0, 50}
	if !bytes.Equal(link.written, expected) {
		t.Errorf("Expected % X, got % X", expected, link.written)
	}

	if bp.Poll() {
		t.Error("Second poll should find nothing to do")
	}
}

func TestBackplaneRunStops(t *testing.T) {
	bp, _, xcvr, _ := newTestBackplane([]byte{1, 2, 3})

	done := make(chan struct{})
	polls := 0
	bp.SetIdleHook(func() {
		polls++
		if polls == 5 {
			close(done)
		}
	})

	bp.Run(done)

	if polls != 5 {
		t.Errorf("Expected 5 iterations, got %d", polls)
	}
	if len(xcvr.sent) != 3 {
		t.Errorf("Expected 3 frames sent, got %d", len(xcvr.sent))
	}
}

func TestBackplaneConcurrentArrivals(t *testing.T) {
	bp, link, _, _ := newTestBackplane(nil)

	const produced = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for seq := uint32(1); seq <= produced; seq++ {
			f := Frame{Address: seq, Length: 1, Payload: [8]byte{byte(seq)}}
			Interrupt(func() { bp.Mailbox().Produce(f) })
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	bp.Run(done)
	bp.Poll()

	// Every record is exactly 5 bytes and internally consistent
	if len(link.written)%5 != 0 {
		t.Fatalf("Output is not a whole number of records: %d bytes", len(link.written))
	}
	var last uint32
	for i := 0; i < len(link.written); i += 5 {
		rec := link.written[i : i+5]
		addr := uint32(rec[0])<<8 | uint32(rec[1])
		if rec[2] != 0 || rec[3] != 1 || rec[4] != byte(addr) {
			t.Fatalf("Inconsistent record % X", rec)
		}
		if addr <= last {
			t.Fatalf("Record %d relayed after %d", addr, last)
		}
		last = addr
	}
	if last != produced {
		t.Errorf("Expected last relayed frame %d, got %d", produced, last)
	}
}
