package subnet

import (
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/llano1025/calEng-sub004/ip"
	"gopkg.in/logex.v1"
)

var (
	ErrInvalidRequirement = logex.Define("host count %v is not allocatable")
	ErrInsufficientSpace  = logex.Define("request '%v': no room left in the major block")
)

// Request asks for one subnet with room for Hosts usable addresses.
// The allocator never mutates it.
type Request struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Hosts int    `json:"hosts"`
}

// Allocation pairs a request with its placed subnet. When the major block
// runs out of space for one request, its Err is set and the other requests
// are still placed; callers must scan for Err before treating the batch as
// complete.
type Allocation struct {
	Request
	Prefix ip.Prefix `json:"prefix"`
	Subnet *Subnet   `json:"subnet,omitempty"`
	Err    error     `json:"-"`
}

// HostPrefix is the longest prefix whose block still holds n usable
// addresses beside the network and broadcast slots: the smallest size
// 2^(32-p) with size-2 >= n.
func HostPrefix(n int) (ip.Prefix, error) {
	if n <= 0 {
		return 0, ErrInvalidRequirement.Format(n)
	}
	need := bits.Len64(uint64(n) + 1) // smallest k with 1<<k >= n+2
	if need > 32 {
		return 0, ErrInvalidRequirement.Format(n)
	}
	return ip.Prefix(32 - need), nil
}

// Allocate partitions the major block into one subnet per request.
//
// Requests are placed largest first (stable, so equal host counts keep
// their input order), each aligned up to the next multiple of its own
// size, packed from the base of the major block. The walk is a fresh one
// on every call; nothing is remembered across invocations. Results come
// back in the caller's request order.
func Allocate(network ip.IP, prefix ip.Prefix, reqs []Request) ([]Allocation, error) {
	major, err := Describe(network, prefix)
	if err != nil {
		return nil, logex.Trace(err)
	}

	ret := make([]Allocation, len(reqs))
	order := make([]int, len(reqs))
	for i, req := range reqs {
		p, err := HostPrefix(req.Hosts)
		if err != nil {
			return nil, logex.Trace(err)
		}
		ret[i] = Allocation{Request: req, Prefix: p}
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return reqs[order[i]].Hosts > reqs[order[j]].Hosts
	})

	// 64-bit cursor: the walk may touch 2^32, one past the last address
	cursor := uint64(major.Network.Int())
	end := uint64(major.Broadcast.Int()) + 1
	for _, idx := range order {
		alloc := &ret[idx]
		size := alloc.Prefix.Size()
		base := (cursor + size - 1) / size * size
		if base+size > end {
			// a failed request consumes no space; smaller ones may still fit
			alloc.Err = ErrInsufficientSpace.Format(alloc.Name)
			continue
		}
		sub, err := Describe(ip.ParseIntIP(uint32(base)), alloc.Prefix)
		if err != nil {
			return nil, logex.Trace(err)
		}
		alloc.Subnet = sub
		cursor = base + size
	}
	return ret, nil
}

// ParseRequests reads a "name:hosts,name:hosts" list into requests, IDs
// assigned by position.
func ParseRequests(s string) ([]Request, error) {
	var ret []Request
	for idx, item := range strings.Split(s, ",") {
		sep := strings.LastIndex(item, ":")
		if sep <= 0 {
			return nil, logex.NewErrorf("invalid request '%v': expect name:hosts", item)
		}
		hosts, err := strconv.Atoi(item[sep+1:])
		if err != nil {
			return nil, logex.NewErrorf("invalid request '%v': expect name:hosts", item)
		}
		ret = append(ret, Request{
			ID:    idx,
			Name:  strings.TrimSpace(item[:sep]),
			Hosts: hosts,
		})
	}
	return ret, nil
}
