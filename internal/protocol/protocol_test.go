package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		command string
		args    []string
	}{
		{"command only", "i2c_scan", "i2c_scan", nil},
		{"command with args", "gpio_write 5 1", "gpio_write", []string{"5", "1"}},
		{"uppercase command is lowercased", "GPIO_READ 2", "gpio_read", []string{"2"}},
		{"args keep their case", "spi_transfer DEADBEEF", "spi_transfer", []string{"DEADBEEF"}},
		{"extra whitespace collapses", "  rgb_led   0  10 20 30  ", "rgb_led", []string{"0", "10", "20", "30"}},
		{"tabs and newline", "\tled_matrix\theart\n", "led_matrix", []string{"heart"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if req.Command != tt.command {
				t.Errorf("Parse(%q) command = %q, want %q", tt.line, req.Command, tt.command)
			}
			if len(req.Args) != len(tt.args) {
				t.Fatalf("Parse(%q) args = %v, want %v", tt.line, req.Args, tt.args)
			}
			if len(tt.args) > 0 && !reflect.DeepEqual(req.Args, tt.args) {
				t.Errorf("Parse(%q) args = %v, want %v", tt.line, req.Args, tt.args)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, line := range []string{"", "   ", "\n", "\t  \r\n"} {
		if _, err := Parse(line); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyCommand", line, err)
		}
	}
}

func TestResponseEncoding(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		wire string
	}{
		{"ok acknowledgement", OK(), "ok\n"},
		{"integer value", Value(1), "1\n"},
		{"string value verbatim", Value(`{"gpio": 22}`), "{\"gpio\": 22}\n"},
		{"error message", Errorf("unknown command"), "error: unknown command\n"},
		{"formatted error", Errorf("invalid pin: %q", "x"), "error: invalid pin: \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.resp.Encode()); got != tt.wire {
				t.Errorf("Encode() = %q, want %q", got, tt.wire)
			}
		})
	}
}

func TestResponseIsError(t *testing.T) {
	if OK().IsError() {
		t.Error("OK() should not be an error response")
	}
	if Value(0).IsError() {
		t.Error("Value(0) should not be an error response")
	}
	if !Errorf("boom").IsError() {
		t.Error("Errorf() should be an error response")
	}
}
