package shell

import (
	"fmt"
	"io"

	"github.com/chzyer/flagly"
	"github.com/chzyer/readline"
	"github.com/llano1025/calEng-sub004/ip"
	"github.com/llano1025/calEng-sub004/subnet"
)

type CLI struct {
	Help     *flagly.CmdHelp `flagly:"handler"`
	Describe *ShellDescribe  `flagly:"handler"`
	Mask     *ShellMask      `flagly:"handler"`
	Vlsm     *ShellVlsm      `flagly:"handler"`
}

func writeSubnet(w io.Writer, sub *subnet.Subnet, binary bool) {
	for _, f := range sub.Fields() {
		fmt.Fprintf(w, "%-13s %s\n", f[0]+":", f[1])
	}
	if binary {
		fmt.Fprintf(w, "%-13s %s\n", "network bits:", sub.Network.Binary())
		fmt.Fprintf(w, "%-13s %s\n", "mask bits:", sub.Mask.Binary())
	}
}

// -----------------------------------------------------------------------------

type ShellDescribe struct {
	Binary bool   `desc:"also show network and mask in binary"`
	Addr   string `type:"[0]"`
	Mask   string `type:"[1]" name:"prefix/mask"`
}

func (sh *ShellDescribe) FlaglyDesc() string {
	return "show network, broadcast and host range for an address"
}

func (sh *ShellDescribe) FlaglyHandle(rl *readline.Instance) error {
	if sh.Addr == "" || sh.Mask == "" {
		return flagly.Error("address and prefix/mask are required")
	}
	addr, err := ip.ParseIP(sh.Addr)
	if err != nil {
		return flagly.Error(err.Error())
	}
	prefix, err := ip.ParsePrefixArg(sh.Mask)
	if err != nil {
		return flagly.Error(err.Error())
	}
	sub, err := subnet.Describe(addr, prefix)
	if err != nil {
		return flagly.Error(err.Error())
	}
	writeSubnet(rl, sub, sh.Binary)
	return nil
}

// -----------------------------------------------------------------------------

type ShellMask struct {
	Mask string `type:"[0]" name:"prefix/mask"`
}

func (sh *ShellMask) FlaglyDesc() string {
	return "convert between prefix length and dotted mask"
}

func (sh *ShellMask) FlaglyHandle(rl *readline.Instance) error {
	if sh.Mask == "" {
		return flagly.Error("prefix or mask is required")
	}
	prefix, err := ip.ParsePrefixArg(sh.Mask)
	if err != nil {
		return flagly.Error(err.Error())
	}
	mask := prefix.Mask()
	fmt.Fprintf(rl, "%-13s /%d\n", "prefix:", prefix)
	fmt.Fprintf(rl, "%-13s %s\n", "mask:", mask)
	fmt.Fprintf(rl, "%-13s %s\n", "wildcard:", mask.Wildcard())
	fmt.Fprintf(rl, "%-13s %s\n", "mask bits:", mask.Binary())
	return nil
}

// -----------------------------------------------------------------------------

type ShellVlsm struct {
	CIDR     string `type:"[0]"`
	Requests string `type:"[1]" name:"name:hosts,..."`
}

func (sh *ShellVlsm) FlaglyDesc() string {
	return "split a block into sized subnets, e.g. vlsm 192.168.1.0/24 web:30,db:10"
}

func (sh *ShellVlsm) FlaglyHandle(rl *readline.Instance) error {
	if sh.CIDR == "" || sh.Requests == "" {
		return flagly.Error("major block and request list are required")
	}
	addr, prefix, err := ip.ParseCIDR(sh.CIDR)
	if err != nil {
		return flagly.Error(err.Error())
	}
	reqs, err := subnet.ParseRequests(sh.Requests)
	if err != nil {
		return flagly.Error(err.Error())
	}
	ret, err := subnet.Allocate(addr, prefix, reqs)
	if err != nil {
		return flagly.Error(err.Error())
	}
	for idx, alloc := range ret {
		if idx > 0 {
			fmt.Fprintln(rl)
		}
		if alloc.Err != nil {
			fmt.Fprintf(rl, "%s (%d hosts): %v\n", alloc.Name, alloc.Hosts, alloc.Err)
			continue
		}
		fmt.Fprintf(rl, "%s (%d hosts) -> %s\n", alloc.Name, alloc.Hosts, alloc.Subnet)
		writeSubnet(rl, alloc.Subnet, false)
	}
	return nil
}
