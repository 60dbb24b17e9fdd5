// Package fake provides an in-memory peripheral runtime for testing.
//
// The fake answers every bridge call with canned but self-consistent
// behavior: digital writes are remembered and read back, analogWrite reports
// the not-supported sentinel for non-PWM pins, and canSend reports the
// unavailable sentinel. Tests can override any call, inject errors or panics,
// and assert that no two calls ever overlapped in time.
package fake

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mcu-control/mcb/internal/peripheral"
)

// pwmPins lists the PWM-capable pins of the target board.
var pwmPins = map[int]bool{3: true, 5: true, 6: true, 9: true, 10: true, 11: true}

// Call records a single invocation of the fake runtime.
type Call struct {
	Name string
	Args []interface{}
}

// Peripheral implements peripheral.Caller for tests.
type Peripheral struct {
	mu    sync.Mutex
	calls []Call
	pins  map[int]int

	// Returns overrides the result for a call name.
	Returns map[string]interface{}

	// Errs forces an error return for a call name.
	Errs map[string]error

	panicOn string

	inFlight   int32
	overlapped int32
}

// New creates a fake peripheral runtime.
func New() *Peripheral {
	return &Peripheral{
		pins:    make(map[int]int),
		Returns: make(map[string]interface{}),
		Errs:    make(map[string]error),
	}
}

// Call implements peripheral.Caller.
func (p *Peripheral) Call(name string, args ...interface{}) (interface{}, error) {
	if atomic.AddInt32(&p.inFlight, 1) > 1 {
		atomic.StoreInt32(&p.overlapped, 1)
	}
	defer atomic.AddInt32(&p.inFlight, -1)

	p.mu.Lock()
	p.calls = append(p.calls, Call{Name: name, Args: args})
	err := p.Errs[name]
	override, hasOverride := p.Returns[name]
	panicOn := p.panicOn
	p.mu.Unlock()

	if panicOn == name {
		panic(fmt.Sprintf("fake peripheral: forced panic in %s", name))
	}
	if err != nil {
		return nil, err
	}
	if hasOverride {
		return override, nil
	}
	return p.respond(name, args)
}

// respond produces the default canned behavior for a call.
func (p *Peripheral) respond(name string, args []interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch name {
	case peripheral.CallDigitalWrite:
		pin, _ := args[0].(int)
		value, _ := args[1].(int)
		p.pins[pin] = value
		return 0, nil
	case peripheral.CallDigitalRead:
		pin, _ := args[0].(int)
		return p.pins[pin], nil
	case peripheral.CallAnalogRead:
		return 512, nil
	case peripheral.CallAnalogWrite:
		pin, _ := args[0].(int)
		if !pwmPins[pin] {
			return peripheral.SentinelNotSupported, nil
		}
		return 0, nil
	case peripheral.CallI2CScan:
		return "[]", nil
	case peripheral.CallI2CTransfer:
		return "", nil
	case peripheral.CallSPITransfer:
		payload, _ := args[0].(string)
		return payload, nil
	case peripheral.CallCANSend:
		return peripheral.SentinelUnavailable, nil
	case peripheral.CallLEDMatrix:
		return 0, nil
	case peripheral.CallRGBLED:
		id, _ := args[0].(int)
		if id != 0 && id != 1 {
			return peripheral.SentinelNotSupported, nil
		}
		return 0, nil
	case peripheral.CallCapabilities:
		return `{"gpio": 22, "adc": 6, "pwm": [3, 5, 6, 9, 10, 11]}`, nil
	}
	return nil, fmt.Errorf("fake peripheral: unknown call %q", name)
}

// SetPanicOn makes the named call panic, exercising the dispatch recovery
// boundary. Safe to call while the bridge is running.
func (p *Peripheral) SetPanicOn(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panicOn = name
}

// Calls returns a copy of all recorded invocations.
func (p *Peripheral) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// CallCount returns the number of recorded invocations.
func (p *Peripheral) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// CallsTo returns the recorded invocations of a single call name.
func (p *Peripheral) CallsTo(name string) []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Call
	for _, c := range p.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Overlapped reports whether two calls were ever in flight at the same time.
// The drain loop contract requires this to stay false.
func (p *Peripheral) Overlapped() bool {
	return atomic.LoadInt32(&p.overlapped) == 1
}

// Pin returns the last value written to a digital pin (0 if never written).
func (p *Peripheral) Pin(pin int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[pin]
}
