package assembler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/exprc/cpu"
)

var (
	reRegister  = regexp.MustCompile(`(?i)^%([a-z0-9]+)$`)
	reImmediate = regexp.MustCompile(`^\$(.+)$`)
	reLabel     = regexp.MustCompile(`(?i)^[a-z_.][a-z0-9_.$]*$`)
)

// parseOperand converts an AT&T operand string into a structured Operand.
func parseOperand(s string, asm *Assembler) (cpu.Operand, error) {
	s = strings.TrimSpace(s)

	if m := reRegister.FindStringSubmatch(s); m != nil {
		reg, ok := cpu.LookupRegister(m[1])
		if !ok {
			return cpu.Operand{}, errors.Errorf("unknown register: %s", s)
		}
		return cpu.Operand{Mode: cpu.ModeRegister, Register: reg}, nil
	}

	if m := reImmediate.FindStringSubmatch(s); m != nil {
		val, err := parseConstant(m[1], asm)
		if err != nil {
			return cpu.Operand{}, err
		}
		return cpu.Operand{Mode: cpu.ModeImmediate, Value: val}, nil
	}

	return cpu.Operand{}, errors.Errorf("unknown operand format: %s", s)
}

// parseConstant converts numeric or symbolic expressions to int64.
func parseConstant(s string, asm *Assembler) (int64, error) {
	s = strings.TrimSpace(s)

	// Character literal ('A')
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		return int64(s[1]), nil
	}

	// Symbol lookup
	if asm != nil {
		if val, ok := asm.symbols[s]; ok {
			return val, nil
		}
	}

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	switch {
	case strings.HasPrefix(strings.ToLower(digits), "0x"):
		digits = digits[2:]
		base = 16
	case strings.HasPrefix(strings.ToLower(digits), "0b"):
		digits = digits[2:]
		base = 2
	}

	val, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number format: %s", s)
	}
	// Immediates are bit patterns: 0xffffffffffffffff is -1.
	if neg {
		return -int64(val), nil
	}
	return int64(val), nil
}

// splitOperands splits an operand string by commas, ignoring commas inside parentheses.
func splitOperands(s string) []string {
	var result []string
	parenLevel := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			parenLevel++
		case ')':
			parenLevel--
		case ',':
			if parenLevel == 0 {
				result = append(result, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
