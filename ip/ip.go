package ip

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"gopkg.in/logex.v1"
)

var (
	ErrInvalidFormat = logex.Define("invalid address '%v': expect four dotted decimal octets")
	ErrInvalidPrefix = logex.Define("invalid prefix '%v': expect a number in [0, 32]")
	ErrNotContiguous = logex.Define("mask '%v': bits are not a leading run of ones")
)

// IP is an IPv4 address in network byte order.
type IP [4]byte

// Prefix is a CIDR prefix length, valid in [0, 32].
type Prefix int

func ParseIntIP(ip uint32) IP {
	var ret IP
	binary.BigEndian.PutUint32(ret[:], ip)
	return ret
}

func (ip IP) Int() uint32 {
	return binary.BigEndian.Uint32(ip[:])
}

func (ip IP) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// Binary renders the address octet by octet in base 2. Display only; the
// dotted decimal form from String() is the canonical one.
func (ip IP) Binary() string {
	return fmt.Sprintf("%08b.%08b.%08b.%08b", ip[0], ip[1], ip[2], ip[3])
}

// Wildcard is the bitwise complement, the Cisco-style inverse mask.
func (ip IP) Wildcard() IP {
	return ParseIntIP(^ip.Int())
}

// ParseIP accepts strict dotted decimal only: exactly four octets, each in
// [0, 255]. net.ParseIP is too permissive here, it also takes IPv6 and
// other textual forms.
func ParseIP(s string) (IP, error) {
	fields := strings.Split(s, ".")
	if len(fields) != 4 {
		return IP{}, ErrInvalidFormat.Format(s)
	}
	var ret IP
	for idx, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return IP{}, ErrInvalidFormat.Format(s)
		}
		ret[idx] = byte(n)
	}
	return ret, nil
}

func ParsePrefix(s string) (Prefix, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !Prefix(n).Valid() {
		return 0, ErrInvalidPrefix.Format(s)
	}
	return Prefix(n), nil
}

// ParsePrefixArg reads either a prefix length ("24") or a dotted mask
// ("255.255.255.0"), whichever form the user typed.
func ParsePrefixArg(s string) (Prefix, error) {
	if !strings.Contains(s, ".") {
		return ParsePrefix(s)
	}
	mask, err := ParseIP(s)
	if err != nil {
		return 0, logex.Trace(err)
	}
	return MaskPrefix(mask)
}

// ParseCIDR splits "a.b.c.d/n" into its address and prefix.
func ParseCIDR(s string) (IP, Prefix, error) {
	idx := strings.Index(s, "/")
	if idx < 0 {
		return IP{}, 0, ErrInvalidFormat.Format(s)
	}
	addr, err := ParseIP(s[:idx])
	if err != nil {
		return IP{}, 0, logex.Trace(err)
	}
	prefix, err := ParsePrefix(s[idx+1:])
	if err != nil {
		return IP{}, 0, logex.Trace(err)
	}
	return addr, prefix, nil
}

func (p Prefix) Valid() bool {
	return p >= 0 && p <= 32
}

// Size is the total address count of a block with this prefix, 2^(32-p).
// Needs 64 bits: a /0 holds 2^32 addresses.
func (p Prefix) Size() uint64 {
	return 1 << uint(32-p)
}

// Mask expands the prefix to its subnet mask: p leading ones, the rest
// zeros. Defined on the whole [0, 32] range.
func (p Prefix) Mask() IP {
	if p <= 0 {
		return IP{}
	}
	return ParseIntIP(^uint32(0) << uint(32-p))
}

// MaskPrefix converts a subnet mask back to its prefix length. The mask
// must be a run of ones from the most significant bit with no holes;
// anything else fails with ErrNotContiguous.
func MaskPrefix(mask IP) (Prefix, error) {
	v := mask.Int()
	// contiguous iff setting every bit below the lowest one fills the word
	if v|(v-1) != ^uint32(0) {
		return 0, ErrNotContiguous.Format(mask.String())
	}
	return Prefix(bits.OnesCount32(v)), nil
}
