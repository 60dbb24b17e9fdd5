package telemetry

import (
	"testing"
	"time"
)

func TestDisabledRecorderIsInert(t *testing.T) {
	recorder, err := NewRecorder(false, nil)
	if err != nil {
		t.Fatalf("NewRecorder(false) failed: %v", err)
	}

	// Must not panic.
	recorder.RecordDispatch("gpio_write", "SUCCESS", time.Millisecond)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var recorder *Recorder
	recorder.RecordDispatch("gpio_read", "SUCCESS", time.Millisecond)
}

func TestEnabledRecorder(t *testing.T) {
	depth := 0
	recorder, err := NewRecorder(true, func() int { return depth })
	if err != nil {
		t.Fatalf("NewRecorder(true) failed: %v", err)
	}

	// Without an SDK installed the global provider is a no-op; recording
	// must still be safe.
	recorder.RecordDispatch("pwm_write", "NOT_SUPPORTED", 2*time.Millisecond)
	recorder.RecordDispatch("capabilities", "SUCCESS", 500*time.Microsecond)
}

func TestEnabledRecorderWithoutQueueDepth(t *testing.T) {
	recorder, err := NewRecorder(true, nil)
	if err != nil {
		t.Fatalf("NewRecorder(true, nil) failed: %v", err)
	}
	recorder.RecordDispatch("i2c_scan", "SUCCESS", time.Millisecond)
}
