// Package server implements the TCP front end of the MCU Control Bridge:
// the connection acceptor and the drain loop.
//
// The acceptor goroutine accepts connections, performs one bounded read per
// connection and enqueues the request; it has no access to the peripheral
// runtime. The drain loop runs on the host's tick goroutine, which owns the
// peripheral.Caller, and processes the queue to empty on every tick.
package server
