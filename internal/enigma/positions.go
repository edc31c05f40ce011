package enigma

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Positions lists one rotor position per rotor, left to right as the rotors
// are installed. It is either Letters (as read in the windows) or Numbers
// (one based).
type Positions interface {
	// Len returns the number of positions.
	Len() int
	// indexes returns zero based positions, left to right.
	indexes(a Alphabet) ([]int, error)
}

// Letters gives positions as window letters, e.g. "BLA".
type Letters string

// Len returns the number of letters.
func (l Letters) Len() int { return len([]rune(string(l))) }

func (l Letters) indexes(a Alphabet) ([]int, error) {
	out := make([]int, 0, len(l))
	for _, r := range string(l) {
		c, ok := a.Index(unicode.ToUpper(r))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, r)
		}
		out = append(out, c)
	}
	return out, nil
}

// Numbers gives positions as one based numbers, e.g. {2, 21, 12}. Values
// wrap around the alphabet, so 0 is the last letter.
type Numbers []int

// Len returns the number of positions.
func (n Numbers) Len() int { return len(n) }

func (n Numbers) indexes(a Alphabet) ([]int, error) {
	out := make([]int, len(n))
	for i, v := range n {
		out[i] = a.Normalize(v - 1)
	}
	return out, nil
}

// ParsePositions converts a loosely typed value, as found in config files or
// flags, into Positions. Accepted: nil, Positions, a string of letters
// ("BLA"), a string of numbers ("2 21 12" or "2,21,12"), []int, and []any
// holding numbers or single letters.
func ParsePositions(v any) (Positions, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Positions:
		return t, nil
	case []int:
		return Numbers(t), nil
	case string:
		return parsePositionString(t)
	case []string:
		return parsePositionString(strings.Join(t, ","))
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return parsePositionString(strings.Join(parts, ","))
	default:
		return nil, fmt.Errorf("%w: unsupported position value %v", ErrInvalidPosition, v)
	}
}

func parsePositionString(s string) (Positions, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if len(fields) == 0 {
		return nil, nil
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return Letters(strings.Join(fields, "")), nil
	}
	nums := make(Numbers, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidPosition, f)
		}
		nums[i] = n
	}
	return nums, nil
}
