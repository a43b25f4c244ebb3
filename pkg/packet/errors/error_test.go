package errors

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jneufeld/slushy/pkg/packet/ast"
)

func TestError_Format(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeMalformed,
		Message:    "missing ']' to close list opened at column 1",
		Location:   ast.Location{Source: "input.txt", Line: 3, Column: 5},
		Context:    LineContext("[1,2", 3, 5),
		Suggestion: "add ] at the end of the document",
	}

	want := "[malformed] missing ']' to close list opened at column 1\n" +
		"  --> input.txt:3:5\n" +
		"  |\n" +
		"  3 | [1,2\n" +
		"    |     ^\n" +
		"  |\n" +
		"  = suggestion: add ] at the end of the document\n"
	assert.Equal(t, want, err.Error())
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		errType ErrorType
		matches []error
		misses  []error
	}{
		{
			errType: ErrorTypeMalformed,
			matches: []error{ErrMalformedDocument},
			misses:  []error{ErrUnpairedDocument, ErrLimitExceeded, ErrIO},
		},
		{
			errType: ErrorTypeUnpaired,
			matches: []error{ErrUnpairedDocument},
			misses:  []error{ErrMalformedDocument, ErrIO},
		},
		{
			errType: ErrorTypeLimit,
			matches: []error{ErrLimitExceeded, ErrMalformedDocument},
			misses:  []error{ErrUnpairedDocument},
		},
		{
			errType: ErrorTypeIO,
			matches: []error{ErrIO},
			misses:  []error{ErrMalformedDocument},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			err := &Error{Type: tt.errType, Message: "x"}
			for _, target := range tt.matches {
				assert.True(t, stderrors.Is(err, target), "want match %v", target)
			}
			for _, target := range tt.misses {
				assert.False(t, stderrors.Is(err, target), "want no match %v", target)
			}
		})
	}
}

func TestError_Cause(t *testing.T) {
	err := &Error{Type: ErrorTypeIO, Message: "failed to read file", Cause: fs.ErrPermission}

	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.True(t, strings.HasPrefix(err.Error(), "[io] failed to read file: permission denied\n"))
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	assert.False(t, el.HasErrors())
	assert.NoError(t, el.ToError())
	assert.Equal(t, "", el.Error())

	el.Add(Malformed(2, "unexpected character %q", 'a'))
	el.Add(&Error{Type: ErrorTypeUnpaired, Message: "group starting at line 4 has 1 document(s), want 2"})

	require.Equal(t, 2, el.Count())
	assert.True(t, el.HasErrorType(ErrorTypeMalformed))
	assert.False(t, el.HasErrorType(ErrorTypeIO))
	assert.Len(t, el.ByType(ErrorTypeUnpaired), 1)
	assert.Contains(t, el.Error(), "Found 2 error(s)")
	assert.Contains(t, el.Error(), "Error 2:\n[unpaired]")

	err := el.ToError()
	assert.True(t, stderrors.Is(err, ErrMalformedDocument))
	assert.True(t, stderrors.Is(err, ErrUnpairedDocument))

	var perr *Error
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, 2, perr.Location.Column)
}

func TestLineContext_LongLine(t *testing.T) {
	line := "[" + strings.Repeat("1,", 100) + "x]"
	column := strings.Index(line, "x") + 1

	ctx := LineContext(line, 7, column)
	lines := strings.Split(strings.TrimSuffix(ctx, "\n"), "\n")
	require.Len(t, lines, 2)

	// The caret sits under the 'x'
	caret := strings.Index(lines[1], "^")
	assert.Equal(t, byte('x'), lines[0][caret])
	assert.True(t, strings.HasPrefix(lines[0], "  7 | ..."))
}

func TestWithLine(t *testing.T) {
	err := WithLine(Malformed(3, "unexpected character %q", ' '), "pairs.txt", 12, "[1 ,2]")

	assert.Equal(t, "pairs.txt:12:3", err.Location.String())
	assert.Equal(t, "  12 | [1 ,2]\n     |   ^\n", err.Context)
	assert.Equal(t, "remove whitespace; documents may only contain digits, ',', '[' and ']'", err.Suggestion)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "[1,2", want: "add ] at the end of the document"},
		{line: "[[1,2", want: "add ]] at the end of the document"},
		{line: "[[[[1", want: "add ]]]] at the end of the document"},
		{line: "[1]]", want: "remove the extra ']' or add the missing '['"},
		{line: "1,2]", want: "a document must start with '['"},
		{line: "[1,,2]", want: "',' must sit between two values"},
		{line: "[1,a]", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(Malformed(1, "x"), tt.line))
		})
	}
}

func TestSuggest_CountsManyMissingBrackets(t *testing.T) {
	line := strings.Repeat("[", 100000) + "1"

	got := Suggest(Malformed(len(line)+1, "x"), line)
	assert.Equal(t, "add 100000 closing ']' at the end of the document", got)
}
