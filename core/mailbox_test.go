package core

import (
	"sync"
	"testing"
)

func TestMailboxEmpty(t *testing.T) {
	mb := NewMailbox()

	if mb.Pending() {
		t.Error("New mailbox should not be pending")
	}
	if _, ok := mb.TryConsume(); ok {
		t.Error("TryConsume on empty mailbox should return nothing")
	}
}

func TestMailboxProduceConsume(t *testing.T) {
	mb := NewMailbox()
	f := Frame{Address: 0x123, Length: 2, Payload: [8]byte{0xAA, 0xBB}}

	Interrupt(func() { mb.Produce(f) })

	if !mb.Pending() {
		t.Fatal("Mailbox should be pending after Produce")
	}

	got, ok := mb.TryConsume()
	if !ok {
		t.Fatal("TryConsume should return the produced frame")
	}
	if got != f {
		t.Errorf("Expected %+v, got %+v", f, got)
	}

	if _, ok := mb.TryConsume(); ok {
		t.Error("Second TryConsume should return nothing")
	}
}

// A second arrival before the main loop drains the slot replaces the first
// one for good. This is the relay's loss policy, not a failure.
func TestMailboxOverwriteLosesOlderFrame(t *testing.T) {
	mb := NewMailbox()
	first := Frame{Address: 0x100, Length: 1, Payload: [8]byte{1}}
	second := Frame{Address: 0x200, IsRequest: true}

	Interrupt(func() { mb.Produce(first) })
	Interrupt(func() { mb.Produce(second) })

	got, ok := mb.TryConsume()
	if !ok {
		t.Fatal("Expected a pending frame")
	}
	if got != second {
		t.Errorf("Expected latest frame %+v, got %+v", second, got)
	}

	if _, ok := mb.TryConsume(); ok {
		t.Error("Overwritten frame must not be recoverable")
	}
}

// seqFrame builds a frame whose every field is derived from seq, so a torn
// read shows up as fields that disagree.
func seqFrame(seq uint32) Frame {
	f := Frame{
		Address:   seq & MaxStandardAddress,
		IsRequest: seq%2 == 1,
		Length:    uint8(seq % 9),
	}
	for i := range f.Payload {
		f.Payload[i] = byte(seq)
	}
	return f
}

func checkSeqFrame(f Frame) bool {
	seq := f.Address
	if f.IsRequest != (seq%2 == 1) || f.Length != uint8(seq%9) {
		return false
	}
	for _, b := range f.Payload {
		if b != byte(seq) {
			return false
		}
	}
	return true
}

func TestMailboxConcurrentNoTearing(t *testing.T) {
	const produced = 2000
	mb := NewMailbox()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for seq := uint32(1); seq <= produced; seq++ {
			f := seqFrame(seq)
			Interrupt(func() { mb.Produce(f) })
		}
	}()

	var last uint32
	consumed := 0
	drain := func() {
		f, ok := mb.TryConsume()
		if !ok {
			return
		}
		consumed++
		if !checkSeqFrame(f) {
			t.Fatalf("Torn frame observed: %+v", f)
		}
		// Each consumed frame is newer than the one before
		if f.Address <= last {
			t.Fatalf("Frame %d consumed after %d", f.Address, last)
		}
		last = f.Address
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			drain()
		}
	}
	drain()

	if last != produced {
		t.Errorf("Expected final consumed frame %d, got %d", produced, last)
	}
	t.Logf("Consumed %d of %d produced frames", consumed, produced)
}
