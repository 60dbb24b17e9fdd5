// Package protocol implements the line-oriented text protocol of the MCU
// Control Bridge.
//
// A request is one line of ASCII text: a command name followed by
// space-separated positional arguments. A response is one line terminated by
// '\n': the literal "ok", a rendered value, or "error: <message>".
package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned by Parse for input with no tokens. An empty
// request is a distinct protocol condition, not an unknown command.
var ErrEmptyCommand = errors.New("empty command")

// Request is a tokenized command line.
type Request struct {
	// Command is the first token, lowercased.
	Command string

	// Args are the remaining tokens in order, unconverted.
	Args []string
}

// Parse tokenizes a raw request line. It splits on whitespace, lowercases
// the command name and leaves arguments as raw strings; each handler owns
// its own argument conversion. Parse has no side effects.
func Parse(line string) (Request, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Request{}, ErrEmptyCommand
	}
	return Request{
		Command: strings.ToLower(tokens[0]),
		Args:    tokens[1:],
	}, nil
}

// Response is the outcome of dispatching one request, ready to be rendered
// to the client. The zero value encodes as an empty error and should not be
// used; construct responses with OK, Value or Errorf.
type Response struct {
	text  string
	isErr bool
}

// OK is the fixed acknowledgement for successful commands with no
// meaningful return value.
func OK() Response {
	return Response{text: "ok"}
}

// Value renders a command's return value as text, verbatim.
func Value(v interface{}) Response {
	return Response{text: fmt.Sprintf("%v", v)}
}

// Errorf builds an error response. The message is sent to the client
// prefixed with "error: ".
func Errorf(format string, args ...interface{}) Response {
	return Response{text: fmt.Sprintf(format, args...), isErr: true}
}

// IsError reports whether the response is an error response.
func (r Response) IsError() bool {
	return r.isErr
}

// Encode renders the response as a single '\n'-terminated wire line.
func (r Response) Encode() []byte {
	if r.isErr {
		return []byte("error: " + r.text + "\n")
	}
	return []byte(r.text + "\n")
}

// String returns the wire line without the trailing newline.
func (r Response) String() string {
	return strings.TrimSuffix(string(r.Encode()), "\n")
}
