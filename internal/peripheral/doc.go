// Package peripheral defines the southbound contract to the MCU peripheral
// runtime for the MCU Control Bridge.
//
// The peripheral runtime exposes one synchronous entry point that is not safe
// for concurrent invocation. Only the drain loop's goroutine may hold a
// Caller; handlers receive it as an explicit parameter so the acceptor can
// never reach the hardware.
package peripheral
