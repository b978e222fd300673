package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabel_String(t *testing.T) {
	req := require.New(t)
	req.Equal("negative", Negative.String())
	req.Equal("neutral", Neutral.String())
	req.Equal("positive", Positive.String())
	req.Equal("label(5)", Label(5).String())
	req.False(Label(5).Valid())
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected Label
		wantErr  bool
	}{
		{input: "positive", expected: Positive},
		{input: " Negative ", expected: Negative},
		{input: "0", expected: Neutral},
		{input: "-1", expected: Negative},
		{input: "+1", expected: Positive},
		{input: "2", wantErr: true},
		{input: "happy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req := require.New(t)
			got, err := ParseLabel(tt.input)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, got)
		})
	}
}
