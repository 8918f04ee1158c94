package sv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Constant expressions in ranges and parameter defaults, e.g. [WIDTH*2-1:0].
type expression struct {
	Left  *term     `@@`
	Right []*opTerm `@@*`
}

type opTerm struct {
	Op   string `@( "+" | "-" )`
	Term *term  `@@`
}

type term struct {
	Left  *factor     `@@`
	Right []*opFactor `@@*`
}

type opFactor struct {
	Op     string  `@( "*" | "/" | "%" )`
	Factor *factor `@@`
}

type factor struct {
	Number *string     `  @Number`
	Ident  *string     `| @Ident`
	Sub    *expression `| "(" @@ ")"`
	Neg    *factor     `| "-" @@`
}

var exprParser = participle.MustBuild[expression](
	participle.Lexer(SVLexer),
	participle.Elide("Comment", "Whitespace"),
)

// evaluate computes the value of a constant expression given as tokens.
// Identifiers are looked up in params.
func evaluate(tokens []string, params map[string]int64) (int64, error) {
	text := strings.Join(tokens, " ")
	expr, err := exprParser.ParseString("", text)
	if err != nil {
		return 0, fmt.Errorf("unsupported constant expression %q: %w", text, err)
	}
	v, err := expr.eval(params)
	if err != nil {
		return 0, fmt.Errorf("expression %q: %w", text, err)
	}
	return v, nil
}

func (e *expression) eval(params map[string]int64) (int64, error) {
	v, err := e.Left.eval(params)
	if err != nil {
		return 0, err
	}
	for _, r := range e.Right {
		rv, err := r.Term.eval(params)
		if err != nil {
			return 0, err
		}
		if r.Op == "+" {
			v += rv
		} else {
			v -= rv
		}
	}
	return v, nil
}

func (t *term) eval(params map[string]int64) (int64, error) {
	v, err := t.Left.eval(params)
	if err != nil {
		return 0, err
	}
	for _, r := range t.Right {
		rv, err := r.Factor.eval(params)
		if err != nil {
			return 0, err
		}
		switch r.Op {
		case "*":
			v *= rv
		case "/", "%":
			if rv == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			if r.Op == "/" {
				v /= rv
			} else {
				v %= rv
			}
		}
	}
	return v, nil
}

func (f *factor) eval(params map[string]int64) (int64, error) {
	switch {
	case f.Number != nil:
		return parseNumber(*f.Number)
	case f.Ident != nil:
		v, ok := params[*f.Ident]
		if !ok {
			return 0, fmt.Errorf("unknown parameter %s", *f.Ident)
		}
		return v, nil
	case f.Sub != nil:
		return f.Sub.eval(params)
	case f.Neg != nil:
		v, err := f.Neg.eval(params)
		return -v, err
	}
	return 0, fmt.Errorf("empty expression")
}

// parseNumber handles decimal and based literals without x/z digits,
// e.g. 16, 1_000, 8'hFF, 'd3.
func parseNumber(s string) (int64, error) {
	s = strings.ReplaceAll(s, "_", "")
	digits, base := s, 10
	if i := strings.IndexByte(s, '\''); i >= 0 {
		spec := strings.TrimLeft(s[i+1:], "sS")
		if spec == "" {
			return 0, fmt.Errorf("malformed number %q", s)
		}
		switch spec[0] {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'd', 'D':
			base = 10
		case 'h', 'H':
			base = 16
		default:
			return 0, fmt.Errorf("unsupported number %q", s)
		}
		digits = spec[1:]
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q: %w", s, err)
	}
	return v, nil
}
