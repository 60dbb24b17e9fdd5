package peripheral

// Call names understood by the peripheral runtime. Each call takes positional
// arguments and returns either a value or an integer sentinel code.
const (
	CallDigitalWrite = "digitalWrite"
	CallDigitalRead  = "digitalRead"
	CallAnalogRead   = "analogRead"
	CallAnalogWrite  = "analogWrite"
	CallI2CScan      = "i2cScan"
	CallI2CTransfer  = "i2cTransfer"
	CallSPITransfer  = "spiTransfer"
	CallCANSend      = "canSend"
	CallLEDMatrix    = "ledMatrix"
	CallRGBLED       = "rgbLed"
	CallCapabilities = "capabilities"
)

// Sentinel return codes reserved by the peripheral runtime. The meaning of a
// sentinel is per-call convention; command handlers map them to client-facing
// error text.
const (
	// SentinelNotSupported signals the capability does not exist on the
	// addressed pin or identifier (analogWrite on a non-PWM pin, rgbLed
	// with an unknown LED id).
	SentinelNotSupported = -1

	// SentinelUnavailable signals the capability exists but is not usable
	// yet (canSend before the CAN transceiver is brought up).
	SentinelUnavailable = -2
)

// Caller is the opaque synchronous call interface to the MCU peripheral
// runtime. Implementations are NOT safe for concurrent use: all calls must
// originate from the single goroutine running the drain loop.
type Caller interface {
	// Call invokes the named peripheral operation with positional
	// arguments. It returns the operation's value (which may be an
	// integer sentinel code) or an error for failures inside the runtime
	// itself.
	Call(name string, args ...interface{}) (interface{}, error)
}

// SentinelCode extracts an integer sentinel from a call result. It returns
// false when the result is not integer-typed, in which case the result is a
// regular value.
func SentinelCode(result interface{}) (int, bool) {
	switch v := result.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	}
	return 0, false
}
