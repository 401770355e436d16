package main

import (
	"fmt"
	"os"

	"github.com/chzyer/flagly"
	"github.com/chzyer/flow"
	"github.com/llano1025/calEng-sub004/ip"
	"github.com/llano1025/calEng-sub004/shell"
	"github.com/llano1025/calEng-sub004/subnet"
	"gopkg.in/logex.v1"
)

type IPCalc struct {
	Describe *CmdDescribe `flagly:"handler"`
	Mask     *CmdMask     `flagly:"handler"`
	Vlsm     *CmdVlsm     `flagly:"handler"`
	Shell    *CmdShell    `flagly:"handler"`
}

func main() {
	fset := flagly.New(os.Args[0])
	f := flow.NewEx(0)
	fset.Context(f)
	if err := fset.Compile(&IPCalc{}); err != nil {
		logex.Fatal(err)
	}

	if err := fset.Run(os.Args[1:]); err != nil {
		flagly.Exit(err)
	}

	err := f.Wait()
	fset.Close()
	if err != nil {
		logex.Error(err)
	}
}

func writeSubnet(sub *subnet.Subnet, binary bool) {
	for _, field := range sub.Fields() {
		fmt.Printf("%-13s %s\n", field[0]+":", field[1])
	}
	if binary {
		fmt.Printf("%-13s %s\n", "network bits:", sub.Network.Binary())
		fmt.Printf("%-13s %s\n", "mask bits:", sub.Mask.Binary())
	}
}

// -----------------------------------------------------------------------------

type CmdDescribe struct {
	Binary bool   `desc:"also show network and mask in binary"`
	Addr   string `type:"[0]"`
	Mask   string `type:"[1]" name:"prefix/mask"`
}

func (c *CmdDescribe) FlaglyHandle(f *flow.Flow) error {
	defer f.Close()
	if c.Addr == "" || c.Mask == "" {
		return flagly.Error("address and prefix/mask are required")
	}
	addr, err := ip.ParseIP(c.Addr)
	if err != nil {
		return flagly.Error(err.Error())
	}
	prefix, err := ip.ParsePrefixArg(c.Mask)
	if err != nil {
		return flagly.Error(err.Error())
	}
	sub, err := subnet.Describe(addr, prefix)
	if err != nil {
		return flagly.Error(err.Error())
	}
	writeSubnet(sub, c.Binary)
	return nil
}

func (CmdDescribe) FlaglyDesc() string {
	return "show network, broadcast and host range for an address"
}

// -----------------------------------------------------------------------------

type CmdMask struct {
	Mask string `type:"[0]" name:"prefix/mask"`
}

func (c *CmdMask) FlaglyHandle(f *flow.Flow) error {
	defer f.Close()
	if c.Mask == "" {
		return flagly.Error("prefix or mask is required")
	}
	prefix, err := ip.ParsePrefixArg(c.Mask)
	if err != nil {
		return flagly.Error(err.Error())
	}
	mask := prefix.Mask()
	fmt.Printf("%-13s /%d\n", "prefix:", prefix)
	fmt.Printf("%-13s %s\n", "mask:", mask)
	fmt.Printf("%-13s %s\n", "wildcard:", mask.Wildcard())
	fmt.Printf("%-13s %s\n", "mask bits:", mask.Binary())
	return nil
}

func (CmdMask) FlaglyDesc() string {
	return "convert between prefix length and dotted mask"
}

// -----------------------------------------------------------------------------

type CmdVlsm struct {
	CIDR     string `type:"[0]"`
	Requests string `type:"[1]" name:"name:hosts,..."`
}

func (c *CmdVlsm) FlaglyHandle(f *flow.Flow) error {
	defer f.Close()
	if c.CIDR == "" || c.Requests == "" {
		return flagly.Error("major block and request list are required")
	}
	addr, prefix, err := ip.ParseCIDR(c.CIDR)
	if err != nil {
		return flagly.Error(err.Error())
	}
	reqs, err := subnet.ParseRequests(c.Requests)
	if err != nil {
		return flagly.Error(err.Error())
	}
	ret, err := subnet.Allocate(addr, prefix, reqs)
	if err != nil {
		return flagly.Error(err.Error())
	}
	failed := 0
	for idx, alloc := range ret {
		if idx > 0 {
			fmt.Println()
		}
		if alloc.Err != nil {
			failed++
			fmt.Printf("%s (%d hosts): %v\n", alloc.Name, alloc.Hosts, alloc.Err)
			continue
		}
		fmt.Printf("%s (%d hosts) -> %s\n", alloc.Name, alloc.Hosts, alloc.Subnet)
		writeSubnet(alloc.Subnet, false)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests not allocated", failed, len(ret))
	}
	return nil
}

func (CmdVlsm) FlaglyDesc() string {
	return "split a block into sized subnets, e.g. vlsm 192.168.1.0/24 web:30,db:10"
}

// -----------------------------------------------------------------------------

type CmdShell struct{}

func (CmdShell) FlaglyHandle(f *flow.Flow) error {
	go shell.New(f).Run()
	return nil
}

func (CmdShell) FlaglyDesc() string {
	return "interactive calculator shell"
}
