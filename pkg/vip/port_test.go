package vip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

func TestParsePortAccepts(t *testing.T) {
	tests := []struct {
		input string
		want  Port
	}{
		{"clk", Port{Name: "clk"}},
		{"  data   [7:0] ", Port{Name: "data", Dimensions: []hdl.Range{{High: 7, Low: 0}}}},
		{"p [5:2]", Port{Name: "p", Dimensions: []hdl.Range{{High: 5, Low: 2}}}},
		{"mem [3:0] [15:0]", Port{Name: "mem", Dimensions: []hdl.Range{{High: 3, Low: 0}, {High: 15, Low: 0}}}},
		{"rev [0:7]", Port{Name: "rev", Dimensions: []hdl.Range{{High: 0, Low: 7}}}},
		{"\tvalid\t", Port{Name: "valid"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePort(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Dimensions, got.Dimensions)
			assert.Equal(t, hdl.Inout, got.Direction)
		})
	}
}

func TestParsePortRejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrInvalidPortDescription},
		{"   ", ErrInvalidPortDescription},
		{"p [B:2]", ErrInvalidDimParsing},
		{"p [5:-1]", ErrInvalidDimParsing},
		{"p [:2]", ErrInvalidDimParsing},
		{"p [4294967296:0]", ErrInvalidDimParsing},
		{"p 5:2", ErrInvalidDimDescription},
		{"p [5:2", ErrInvalidDimDescription},
		{"p 5:2]", ErrInvalidDimDescription},
		{"p [52]", ErrInvalidDimDescription},
		{"p [5: 2]", ErrInvalidDimDescription},
		{"p (5:2)", ErrInvalidDimDescription},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParsePort(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestParsePortWrapsStrconvError(t *testing.T) {
	_, err := ParsePort("p [B:2]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"B"`)
}
