package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{"with field", NewConfigError("parser.digit_mode", "unknown mode"), "config error in parser.digit_mode: unknown mode"},
		{"without field", NewConfigError("", "failed to load config"), "config error: failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	underlying := errors.New("no such file")
	err := NewCommandError("solve", underlying)

	if got, want := err.Error(), "command solve failed: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is(err, underlying) = false, want true")
	}
}

func TestCheckError(t *testing.T) {
	err := &CheckError{Files: 2, Problems: 3}
	if got, want := err.Error(), "3 problem(s) found in 2 file(s)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

type answer struct {
	Sum int `json:"sum"`
}

func (a answer) String() string { return "sum: 13" }

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"plain string", "Less", "Less\n"},
		{"stringer", answer{Sum: 13}, "sum: 13\n"},
		{"trailing newline kept single", "a\nb\n", "a\nb\n"},
		{"int", 140, "140\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TextFormatter{}).FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{Indent: true}).FormatTo(&buf, answer{Sum: 13}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded answer
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded.Sum != 13 {
		t.Errorf("Sum = %d, want 13", decoded.Sum)
	}
	if !strings.Contains(buf.String(), "\n  \"sum\"") {
		t.Errorf("output not indented: %q", buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format   string
		wantType string
		wantErr  bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"JSON", "json", false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error type = %T, want *ConfigError", err)
				}
				return
			}
			switch f.(type) {
			case *TextFormatter:
				if tt.wantType != "text" {
					t.Errorf("got text formatter, want %s", tt.wantType)
				}
			case *JSONFormatter:
				if tt.wantType != "json" {
					t.Errorf("got json formatter, want %s", tt.wantType)
				}
			}
		})
	}
}

func TestSetupSignalHandler(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := SetupSignalHandler(parent)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context canceled before any signal")
	case <-time.After(10 * time.Millisecond):
	}

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled with its parent")
	}
}

func TestSimpleProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Start(4)
	p.Update(2)
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "(2/4)") || !strings.Contains(out, "(4/4)") {
		t.Errorf("output = %q, want (2/4) and (4/4)", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish() did not end the line")
	}
}

func TestSimpleProgress_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Start(0)
	p.Update(3)
	p.Finish()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing for zero total", buf.String())
	}
}
