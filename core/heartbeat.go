package core

// DefaultHeartbeatPeriodMS is the time each LED step lasts
const DefaultHeartbeatPeriodMS = 200

// Heartbeat toggles a row of LEDs one after another, one step per period.
// It runs off the timer list so the main loop never sleeps for it.
type Heartbeat struct {
	Timer Timer

	leds   LEDDriver
	count  int
	next   int
	period uint32
}

// NewHeartbeat creates a heartbeat over count LEDs stepping every period ticks
func NewHeartbeat(leds LEDDriver, count int, period uint32) *Heartbeat {
	if count < 1 {
		count = 1
	}
	if period == 0 {
		period = TimerFromMS(DefaultHeartbeatPeriodMS)
	}
	h := &Heartbeat{
		leds:   leds,
		count:  count,
		period: period,
	}
	h.Timer.Handler = h.step
	return h
}

// Start schedules the first step one period from now
func (h *Heartbeat) Start() {
	h.Timer.WakeTime = GetTime() + h.period
	ScheduleTimer(&h.Timer)
}

// Stop removes the heartbeat from the timer list
func (h *Heartbeat) Stop() {
	CancelTimer(&h.Timer)
}

func (h *Heartbeat) step(t *Timer) uint8 {
	h.leds.Toggle(h.next)
	h.next = (h.next + 1) % h.count

	t.WakeTime += h.period
	// Skip missed steps after a long stall instead of replaying them
	if now := GetTime(); !timeBefore(now, t.WakeTime) {
		t.WakeTime = now + h.period
	}
	return SF_RESCHEDULE
}
