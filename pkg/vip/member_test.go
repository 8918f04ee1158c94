package vip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMember(t *testing.T) {
	tests := []struct {
		input string
		want  Member
		err   error
	}{
		{input: "int a", want: Member{Name: "a", Kind: "int"}},
		{input: "  logic[7:0]   data ", want: Member{Name: "data", Kind: "logic[7:0]"}},
		{input: "rand bit flag", want: Member{Name: "flag", Kind: "bit", IsRandomized: true}},
		{input: "rand int rand", want: Member{Name: "rand", Kind: "int", IsRandomized: true}},
		{input: "rand a", err: ErrUnexpectedRand},
		{input: "randc int a", err: ErrRandNotFound},
		{input: "static int a", err: ErrRandNotFound},
		{input: "", err: ErrInvalidMemberDescription},
		{input: "a", err: ErrInvalidMemberDescription},
		{input: "rand rand int a", err: ErrInvalidMemberDescription},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMember(tt.input)
			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err), "got %v, want %v", err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMemberRandPrefixIsRequired(t *testing.T) {
	for _, prefix := range []string{"rand", "const", "local", "x"} {
		_, err := ParseMember(prefix + " int value")
		if prefix == "rand" {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrRandNotFound)
	}
}
