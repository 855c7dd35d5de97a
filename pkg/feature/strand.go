package feature

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/matzehuels/seqview/pkg/errors"
)

// Strand is the directionality of a feature. The zero value is StrandNone.
type Strand int8

const (
	StrandNone       Strand = iota // no strand information
	StrandForward                  // +1, sense
	StrandReverse                  // -1, anti-sense
	StrandUnstranded               // 0, explicitly without direction
)

// Sign returns +1, -1 or 0. StrandNone also reports 0.
func (s Strand) Sign() int {
	switch s {
	case StrandForward:
		return 1
	case StrandReverse:
		return -1
	default:
		return 0
	}
}

// String returns "+1", "-1", "0", or "" for StrandNone.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+1"
	case StrandReverse:
		return "-1"
	case StrandUnstranded:
		return "0"
	default:
		return ""
	}
}

// ParseStrand accepts "+", "+1", "1", "-", "-1", "0", "." and the empty string
// (StrandNone). Anything else is an INVALID_STRAND error.
func ParseStrand(s string) (Strand, error) {
	switch strings.TrimSpace(s) {
	case "":
		return StrandNone, nil
	case "+", "+1", "1":
		return StrandForward, nil
	case "-", "-1":
		return StrandReverse, nil
	case "0", ".":
		return StrandUnstranded, nil
	}
	return StrandNone, errors.New(errors.ErrCodeInvalidStrand, "invalid strand %q (want +1, -1, 0 or empty)", s)
}

// StrandFromSign maps +1/-1/0 to a Strand.
func StrandFromSign(n int) (Strand, error) {
	switch n {
	case 1:
		return StrandForward, nil
	case -1:
		return StrandReverse, nil
	case 0:
		return StrandUnstranded, nil
	}
	return StrandNone, errors.New(errors.ErrCodeInvalidStrand, "invalid strand %d (want +1, -1 or 0)", n)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strand) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strand) UnmarshalText(b []byte) error {
	v, err := ParseStrand(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON writes the strand as 1, -1, 0 or null.
func (s Strand) MarshalJSON() ([]byte, error) {
	if s == StrandNone {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.Sign())), nil
}

// UnmarshalJSON accepts a number, a string form understood by ParseStrand,
// or null.
func (s *Strand) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = StrandNone
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		unq, err := strconv.Unquote(string(b))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStrand, err, "decode strand")
		}
		return s.UnmarshalText([]byte(unq))
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStrand, err, "decode strand")
	}
	v, err := StrandFromSign(n)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
