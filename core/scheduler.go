package core

// Timer represents a scheduled event.
// Handlers run from the main loop with interrupts masked and must not call
// ScheduleTimer; return SF_RESCHEDULE with an updated WakeTime instead.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var timerList *Timer

// ScheduleTimer adds a timer to the schedule
func ScheduleTimer(t *Timer) {
	Critical(func() {
		insertTimer(t)
	})
}

// CancelTimer removes t from the schedule if it is queued
func CancelTimer(t *Timer) {
	Critical(func() {
		if timerList == t {
			timerList = t.Next
			t.Next = nil
			return
		}
		for cur := timerList; cur != nil; cur = cur.Next {
			if cur.Next == t {
				cur.Next = t.Next
				t.Next = nil
				return
			}
		}
	})
}

// insertTimer inserts a timer in sorted order by WakeTime
func insertTimer(t *Timer) {
	if timerList == nil || timeBefore(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && !timeBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// ProcessTimers runs every timer whose WakeTime has passed
func ProcessTimers() {
	now := GetTime()
	Critical(func() {
		for timerList != nil && !timeBefore(now, timerList.WakeTime) {
			timer := timerList
			timerList = timer.Next
			timer.Next = nil

			if timer.Handler(timer) == SF_RESCHEDULE {
				insertTimer(timer)
			}
		}
	})
}

// ResetTimers drops every scheduled timer
func ResetTimers() {
	Critical(func() {
		timerList = nil
	})
}
