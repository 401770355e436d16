package subnet

import (
	"strconv"

	"github.com/llano1025/calEng-sub004/ip"
	"gopkg.in/logex.v1"
)

// Subnet describes one IPv4 block. Every field derives from the
// (network, prefix) pair and is fixed once computed.
type Subnet struct {
	Network     ip.IP     `json:"network"`
	Broadcast   ip.IP     `json:"broadcast"`
	Mask        ip.IP     `json:"mask"`
	Wildcard    ip.IP     `json:"wildcard"`
	Prefix      ip.Prefix `json:"prefix"`
	TotalHosts  uint64    `json:"total_hosts"`
	UsableHosts uint64    `json:"usable_hosts"`
	FirstUsable ip.IP     `json:"first_usable"`
	LastUsable  ip.IP     `json:"last_usable"`
}

// Describe computes the block containing addr at the given prefix length.
// The address must already be parsed; the prefix is checked here.
//
// A /31 or /32 has no room for the two reserved slots: UsableHosts clamps
// to 0 and the usable range collapses onto [network, broadcast] instead of
// wrapping around it.
func Describe(addr ip.IP, prefix ip.Prefix) (*Subnet, error) {
	if !prefix.Valid() {
		return nil, ip.ErrInvalidPrefix.Format(int(prefix))
	}
	mask := prefix.Mask()
	network := ip.ParseIntIP(addr.Int() & mask.Int())
	broadcast := ip.ParseIntIP(network.Int() | ^mask.Int())
	total := prefix.Size()

	sub := &Subnet{
		Network:    network,
		Broadcast:  broadcast,
		Mask:       mask,
		Wildcard:   mask.Wildcard(),
		Prefix:     prefix,
		TotalHosts: total,
	}
	if total > 2 {
		sub.UsableHosts = total - 2
		sub.FirstUsable = ip.ParseIntIP(network.Int() + 1)
		sub.LastUsable = ip.ParseIntIP(broadcast.Int() - 1)
	} else {
		sub.FirstUsable = network
		sub.LastUsable = broadcast
	}
	return sub, nil
}

// DescribeCIDR is Describe for "a.b.c.d/n" input.
func DescribeCIDR(s string) (*Subnet, error) {
	addr, prefix, err := ip.ParseCIDR(s)
	if err != nil {
		return nil, logex.Trace(err)
	}
	return Describe(addr, prefix)
}

func (s *Subnet) Contains(a ip.IP) bool {
	return a.Int() >= s.Network.Int() && a.Int() <= s.Broadcast.Int()
}

func (s *Subnet) String() string {
	return s.Network.String() + "/" + strconv.Itoa(int(s.Prefix))
}

// Fields flattens the subnet to ordered key/value pairs, the form the
// surrounding display and export layers consume.
func (s *Subnet) Fields() [][2]string {
	return [][2]string{
		{"network", s.Network.String()},
		{"broadcast", s.Broadcast.String()},
		{"mask", s.Mask.String()},
		{"wildcard", s.Wildcard.String()},
		{"prefix", "/" + strconv.Itoa(int(s.Prefix))},
		{"total hosts", strconv.FormatUint(s.TotalHosts, 10)},
		{"usable hosts", strconv.FormatUint(s.UsableHosts, 10)},
		{"first usable", s.FirstUsable.String()},
		{"last usable", s.LastUsable.String()},
	}
}
