package command

import (
	"log"
	"strconv"
	"time"

	"github.com/mcu-control/mcb/internal/peripheral"
	"github.com/mcu-control/mcb/internal/protocol"
)

// result pairs a client response with its audit outcome code.
type result struct {
	resp    protocol.Response
	outcome string
}

// handlerFunc executes one command against the peripheral runtime. The
// Caller parameter is the capability token: handlers can only reach the
// hardware through the caller the drain loop passes in.
type handlerFunc func(caller peripheral.Caller, args []string) result

// descriptor binds a command name to its minimum arity and handler.
type descriptor struct {
	name    string
	minArgs int
	handler handlerFunc
}

// Dispatcher routes request lines to peripheral calls. The descriptor table
// is built once and immutable afterwards, so concurrent reads need no
// locking.
type Dispatcher struct {
	table map[string]descriptor

	auditLogger AuditLogger
	metrics     Metrics
}

// NewDispatcher creates a dispatcher with the full bridge command table.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{table: make(map[string]descriptor)}
	for _, desc := range []descriptor{
		{"gpio_write", 2, handleGpioWrite},
		{"gpio_read", 1, handleGpioRead},
		{"adc_read", 1, handleAdcRead},
		{"pwm_write", 2, handlePwmWrite},
		{"i2c_scan", 0, handleI2CScan},
		{"i2c_transfer", 3, handleI2CTransfer},
		{"spi_transfer", 1, handleSPITransfer},
		{"can_send", 2, handleCanSend},
		{"led_matrix", 1, handleLedMatrix},
		{"rgb_led", 4, handleRgbLed},
		{"capabilities", 0, handleCapabilities},
	} {
		d.table[desc.name] = desc
	}
	return d
}

// SetAuditLogger sets the audit logger.
func (d *Dispatcher) SetAuditLogger(logger AuditLogger) {
	d.auditLogger = logger
}

// SetMetrics sets the metrics recorder.
func (d *Dispatcher) SetMetrics(metrics Metrics) {
	d.metrics = metrics
}

// Dispatch parses a raw request line and executes the matching command
// against the peripheral runtime. It always returns a renderable response:
// protocol failures become protocol error responses, and any panic below
// this boundary is recovered, logged and rendered as a generic error. The
// caller must be the drain loop's goroutine.
func (d *Dispatcher) Dispatch(caller peripheral.Caller, requestID, line string) (resp protocol.Response) {
	start := time.Now()
	var (
		commandName string
		args        []string
	)
	outcome := OutcomeInternal

	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch panic: request=%s command=%q: %v", requestID, commandName, r)
			outcome = OutcomeInternal
			resp = protocol.Errorf("%v", r)
		}
		latency := time.Since(start)
		if d.auditLogger != nil {
			d.auditLogger.LogCommand(requestID, commandName, args, outcome, latency)
		}
		if d.metrics != nil {
			d.metrics.RecordDispatch(commandName, outcome, latency)
		}
	}()

	req, err := protocol.Parse(line)
	if err != nil {
		outcome = OutcomeEmpty
		return protocol.Errorf("empty command")
	}
	commandName = req.Command
	args = req.Args

	// Arity-insufficient requests fall through to unknown: the match
	// requires both the name and the minimum argument count.
	desc, ok := d.table[req.Command]
	if !ok || len(req.Args) < desc.minArgs {
		outcome = OutcomeUnknown
		return protocol.Errorf("unknown command")
	}

	res := desc.handler(caller, req.Args)
	outcome = res.outcome
	return res.resp
}

// badArgument builds the protocol error for a malformed numeric argument.
func badArgument(name, raw string) result {
	return result{protocol.Errorf("invalid %s: %q", name, raw), OutcomeBadArgument}
}

// callFailure maps an error from inside the peripheral runtime to a generic
// error response. Diagnostic detail goes to the process log; the client gets
// a best-effort description.
func callFailure(call string, err error) result {
	log.Printf("peripheral call %s failed: %v", call, err)
	return result{protocol.Errorf("%v", err), OutcomeInternal}
}

// intArg converts one positional argument to an integer.
func intArg(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func handleGpioWrite(caller peripheral.Caller, args []string) result {
	pin, ok := intArg(args[0])
	if !ok {
		return badArgument("pin", args[0])
	}
	value, ok := intArg(args[1])
	if !ok {
		return badArgument("value", args[1])
	}
	if _, err := caller.Call(peripheral.CallDigitalWrite, pin, value); err != nil {
		return callFailure(peripheral.CallDigitalWrite, err)
	}
	return result{protocol.OK(), OutcomeSuccess}
}

func handleGpioRead(caller peripheral.Caller, args []string) result {
	pin, ok := intArg(args[0])
	if !ok {
		return badArgument("pin", args[0])
	}
	value, err := caller.Call(peripheral.CallDigitalRead, pin)
	if err != nil {
		return callFailure(peripheral.CallDigitalRead, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}

func handleAdcRead(caller peripheral.Caller, args []string) result {
	pin, ok := intArg(args[0])
	if !ok {
		return badArgument("pin", args[0])
	}
	value, err := caller.Call(peripheral.CallAnalogRead, pin)
	if err != nil {
		return callFailure(peripheral.CallAnalogRead, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}

func handlePwmWrite(caller peripheral.Caller, args []string) result {
	pin, ok := intArg(args[0])
	if !ok {
		return badArgument("pin", args[0])
	}
	duty, ok := intArg(args[1])
	if !ok {
		return badArgument("duty", args[1])
	}
	value, err := caller.Call(peripheral.CallAnalogWrite, pin, duty)
	if err != nil {
		return callFailure(peripheral.CallAnalogWrite, err)
	}
	if code, isCode := peripheral.SentinelCode(value); isCode && code == peripheral.SentinelNotSupported {
		return result{protocol.Errorf("not a PWM pin"), OutcomeNotSupported}
	}
	return result{protocol.OK(), OutcomeSuccess}
}

func handleI2CScan(caller peripheral.Caller, args []string) result {
	value, err := caller.Call(peripheral.CallI2CScan)
	if err != nil {
		return callFailure(peripheral.CallI2CScan, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}

func handleI2CTransfer(caller peripheral.Caller, args []string) result {
	address, ok := intArg(args[0])
	if !ok {
		return badArgument("address", args[0])
	}
	length, ok := intArg(args[2])
	if !ok {
		return badArgument("length", args[2])
	}
	value, err := caller.Call(peripheral.CallI2CTransfer, address, args[1], length)
	if err != nil {
		return callFailure(peripheral.CallI2CTransfer, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}

func handleSPITransfer(caller peripheral.Caller, args []string) result {
	value, err := caller.Call(peripheral.CallSPITransfer, args[0])
	if err != nil {
		return callFailure(peripheral.CallSPITransfer, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}

func handleCanSend(caller peripheral.Caller, args []string) result {
	id, ok := intArg(args[0])
	if !ok {
		return badArgument("id", args[0])
	}
	value, err := caller.Call(peripheral.CallCANSend, id, args[1])
	if err != nil {
		return callFailure(peripheral.CallCANSend, err)
	}
	if code, isCode := peripheral.SentinelCode(value); isCode && code == peripheral.SentinelUnavailable {
		return result{protocol.Errorf("CAN not yet available"), OutcomeUnavailable}
	}
	return result{protocol.OK(), OutcomeSuccess}
}

func handleLedMatrix(caller peripheral.Caller, args []string) result {
	if _, err := caller.Call(peripheral.CallLEDMatrix, args[0]); err != nil {
		return callFailure(peripheral.CallLEDMatrix, err)
	}
	return result{protocol.OK(), OutcomeSuccess}
}

func handleRgbLed(caller peripheral.Caller, args []string) result {
	values := make([]int, 4)
	names := []string{"id", "r", "g", "b"}
	for i, name := range names {
		v, ok := intArg(args[i])
		if !ok {
			return badArgument(name, args[i])
		}
		values[i] = v
	}
	value, err := caller.Call(peripheral.CallRGBLED, values[0], values[1], values[2], values[3])
	if err != nil {
		return callFailure(peripheral.CallRGBLED, err)
	}
	if code, isCode := peripheral.SentinelCode(value); isCode && code == peripheral.SentinelNotSupported {
		return result{protocol.Errorf("invalid LED id (use 0 or 1)"), OutcomeInvalidID}
	}
	return result{protocol.OK(), OutcomeSuccess}
}

func handleCapabilities(caller peripheral.Caller, args []string) result {
	// The capability descriptor is pre-formatted by the peripheral
	// runtime and rendered verbatim.
	value, err := caller.Call(peripheral.CallCapabilities)
	if err != nil {
		return callFailure(peripheral.CallCapabilities, err)
	}
	return result{protocol.Value(value), OutcomeSuccess}
}
