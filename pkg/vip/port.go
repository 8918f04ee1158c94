package vip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

// Port descriptor errors.
var (
	ErrInvalidPortDescription     = errors.New("invalid port description")
	ErrInvalidPortNameDescription = errors.New("invalid port name description")
	ErrInvalidDimDescription      = errors.New("invalid dimension description")
	ErrInvalidDimParsing          = errors.New("dimension is not a positive numeric value")
)

// Port is a VIP interface signal. Its direction stays hdl.Inout until the
// direction resolver sets it.
type Port struct {
	Name       string        `yaml:"name"`
	Direction  hdl.Direction `yaml:"direction"`
	Dimensions []hdl.Range   `yaml:"dimensions,omitempty"`
}

// ParsePort parses a port descriptor of the form "<name> [<hi>:<lo>] ...".
// Each dimension token must be exactly "[<uint>:<uint>]"; high >= low is not
// checked.
func ParsePort(s string) (Port, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Port{}, fmt.Errorf("%w (expected: '<port_name> <dim0> <dim1>...', found: %q)", ErrInvalidPortDescription, s)
	}
	if fields[0] == "" {
		return Port{}, ErrInvalidPortNameDescription
	}

	port := Port{
		Name:      fields[0],
		Direction: hdl.Inout,
	}
	for _, token := range fields[1:] {
		r, err := parseDim(token)
		if err != nil {
			return Port{}, err
		}
		port.Dimensions = append(port.Dimensions, r)
	}
	return port, nil
}

func parseDim(token string) (hdl.Range, error) {
	inner, ok := strings.CutPrefix(token, "[")
	if ok {
		inner, ok = strings.CutSuffix(inner, "]")
	}
	var high, low string
	if ok {
		high, low, ok = strings.Cut(inner, ":")
	}
	if !ok {
		return hdl.Range{}, fmt.Errorf("%w (expected: '[<u32>:<u32>]', found: %q)", ErrInvalidDimDescription, token)
	}

	hi, err := strconv.ParseUint(high, 10, 32)
	if err != nil {
		return hdl.Range{}, fmt.Errorf("%w: %w", ErrInvalidDimParsing, err)
	}
	lo, err := strconv.ParseUint(low, 10, 32)
	if err != nil {
		return hdl.Range{}, fmt.Errorf("%w: %w", ErrInvalidDimParsing, err)
	}
	return hdl.Range{High: uint32(hi), Low: uint32(lo)}, nil
}
