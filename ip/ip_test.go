package ip

import (
	"testing"

	"github.com/chzyer/test"
	"gopkg.in/logex.v1"
)

func TestParseIP(t *testing.T) {
	defer test.New(t)

	var result = []struct {
		Text string
		IP   IP
		Ok   bool
	}{
		{"192.168.1.1", IP{192, 168, 1, 1}, true},
		{"0.0.0.0", IP{0, 0, 0, 0}, true},
		{"255.255.255.255", IP{255, 255, 255, 255}, true},
		{"192.168.1.300", IP{}, false},
		{"192.168.1", IP{}, false},
		{"192.168.1.1.5", IP{}, false},
		{"192.168.one.1", IP{}, false},
		{"192.168.-1.1", IP{}, false},
		{"", IP{}, false},
	}

	for _, r := range result {
		got, err := ParseIP(r.Text)
		if !r.Ok {
			test.Should(logex.Equal(err, ErrInvalidFormat))
			continue
		}
		test.Nil(err)
		test.Equal(got, r.IP)
		test.Equal(got.String(), r.Text)
	}
}

func TestIPInt(t *testing.T) {
	defer test.New(t)

	ip, err := ParseIP("10.6.0.1")
	test.Nil(err)
	test.Equal(ip.Int(), uint32(0x0a060001))
	test.Equal(ParseIntIP(0x0a060001), ip)

	// top bit set must survive the round trip
	high, err := ParseIP("224.0.0.1")
	test.Nil(err)
	test.Equal(ParseIntIP(high.Int()), high)
}

func TestBinary(t *testing.T) {
	defer test.New(t)

	ip, err := ParseIP("192.168.1.1")
	test.Nil(err)
	test.Equal(ip.Binary(), "11000000.10101000.00000001.00000001")

	back, err := ParseIP(ip.String())
	test.Nil(err)
	test.Equal(back, ip)
}

func TestMaskRoundTrip(t *testing.T) {
	defer test.New(t)

	for p := Prefix(0); p <= 32; p++ {
		mask := p.Mask()
		got, err := MaskPrefix(mask)
		test.Nil(err)
		test.Equal(got, p)

		// exactly p leading ones
		v := mask.Int()
		for i := 0; i < 32; i++ {
			bit := v>>(31-i)&1 == 1
			test.Equal(bit, i < int(p))
		}
	}

	test.Equal(Prefix(0).Mask().String(), "0.0.0.0")
	test.Equal(Prefix(24).Mask().String(), "255.255.255.0")
	test.Equal(Prefix(30).Mask().String(), "255.255.255.252")
	test.Equal(Prefix(32).Mask().String(), "255.255.255.255")
}

func TestMaskPrefix(t *testing.T) {
	defer test.New(t)

	mask, err := ParseIP("255.255.255.252")
	test.Nil(err)
	p, err := MaskPrefix(mask)
	test.Nil(err)
	test.Equal(p, Prefix(30))

	for _, s := range []string{"255.0.255.0", "0.255.255.255", "255.255.255.253"} {
		mask, err = ParseIP(s)
		test.Nil(err)
		_, err = MaskPrefix(mask)
		test.Should(logex.Equal(err, ErrNotContiguous))
	}
}

func TestParsePrefixArg(t *testing.T) {
	defer test.New(t)

	p, err := ParsePrefixArg("24")
	test.Nil(err)
	test.Equal(p, Prefix(24))

	p, err = ParsePrefixArg("255.255.255.0")
	test.Nil(err)
	test.Equal(p, Prefix(24))

	_, err = ParsePrefixArg("33")
	test.Should(logex.Equal(err, ErrInvalidPrefix))
	_, err = ParsePrefixArg("-1")
	test.Should(logex.Equal(err, ErrInvalidPrefix))
}

func TestParseCIDR(t *testing.T) {
	defer test.New(t)

	addr, prefix, err := ParseCIDR("192.168.1.0/24")
	test.Nil(err)
	test.Equal(addr, IP{192, 168, 1, 0})
	test.Equal(prefix, Prefix(24))

	_, _, err = ParseCIDR("192.168.1.0")
	test.Should(logex.Equal(err, ErrInvalidFormat))
	_, _, err = ParseCIDR("192.168.1.0/33")
	test.Should(logex.Equal(err, ErrInvalidPrefix))
	_, _, err = ParseCIDR("192.168.1.300/24")
	test.Should(logex.Equal(err, ErrInvalidFormat))
}

func TestWildcard(t *testing.T) {
	defer test.New(t)

	test.Equal(Prefix(24).Mask().Wildcard().String(), "0.0.0.255")
	test.Equal(Prefix(27).Mask().Wildcard().String(), "0.0.0.31")
}
