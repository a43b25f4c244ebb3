package logging

import (
	"context"
	"reflect"
	"testing"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithInput(ctx, "day13.txt")
	ctx = WithCommand(ctx, "solve")

	if got := GetRunID(ctx); got != "run-1" {
		t.Errorf("GetRunID() = %q, want %q", got, "run-1")
	}
	if got := GetInput(ctx); got != "day13.txt" {
		t.Errorf("GetInput() = %q, want %q", got, "day13.txt")
	}
	if got := GetCommand(ctx); got != "solve" {
		t.Errorf("GetCommand() = %q, want %q", got, "solve")
	}
}

func TestContextKeys_Empty(t *testing.T) {
	ctx := context.Background()

	if got := GetRunID(ctx); got != "" {
		t.Errorf("GetRunID() = %q, want empty", got)
	}
	if got := GetInput(ctx); got != "" {
		t.Errorf("GetInput() = %q, want empty", got)
	}
	if got := GetCommand(ctx); got != "" {
		t.Errorf("GetCommand() = %q, want empty", got)
	}
}

func TestExtractContextFields(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want []any
	}{
		{
			name: "empty",
			ctx:  context.Background(),
			want: nil,
		},
		{
			name: "run id only",
			ctx:  WithRunID(context.Background(), "r"),
			want: []any{"run_id", "r"},
		},
		{
			name: "all fields in fixed order",
			ctx:  WithInput(WithRunID(WithCommand(context.Background(), "watch"), "r"), "in.txt"),
			want: []any{"command", "watch", "run_id", "r", "input", "in.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractContextFields(tt.ctx); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractContextFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextOverwrite(t *testing.T) {
	ctx := WithRunID(context.Background(), "first")
	ctx = WithRunID(ctx, "second")

	if got := GetRunID(ctx); got != "second" {
		t.Errorf("GetRunID() = %q, want %q", got, "second")
	}
}
