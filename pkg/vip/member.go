package vip

import (
	"errors"
	"fmt"
	"strings"
)

// Member descriptor errors.
var (
	ErrInvalidMemberDescription = errors.New("invalid member description")
	ErrUnexpectedRand           = errors.New("unexpected rand found")
	ErrRandNotFound             = errors.New("expected rand")
)

// Member is a field of the VIP transaction item.
type Member struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	IsRandomized bool   `yaml:"is_randomized"`
}

// ParseMember parses "<type> <name>" or "rand <type> <name>". Any other shape
// is rejected.
func ParseMember(s string) (Member, error) {
	fields := strings.Fields(s)

	switch len(fields) {
	case 2:
		if fields[0] == "rand" {
			return Member{}, fmt.Errorf("%w (expected: <type> <name>, found: %q)", ErrUnexpectedRand, s)
		}
		return Member{Name: fields[1], Kind: fields[0]}, nil
	case 3:
		if fields[0] != "rand" {
			return Member{}, fmt.Errorf("%w (expected: rand <type> <name>, found: %q)", ErrRandNotFound, s)
		}
		return Member{Name: fields[2], Kind: fields[1], IsRandomized: true}, nil
	default:
		return Member{}, fmt.Errorf("%w (expected: <rand (opt)> <type> <name>, found: %q)", ErrInvalidMemberDescription, s)
	}
}
