package sampler

import (
	"encoding/binary"
	"fmt"
	"net"
)

const addressBits = 32

// hostBlock is the inclusive range of usable host addresses in a
// parsed IPv4 network, in integer form.
type hostBlock struct {
	first uint32
	last  uint32
}

// size returns the number of usable hosts in the block.
func (b hostBlock) size() uint64 {
	return uint64(b.last) - uint64(b.first) + 1
}

// parseHostBlock parses a CIDR string and returns the usable host
// range, excluding the network and broadcast addresses. A /31 keeps
// both addresses and a /32 keeps its single address, matching
// point-to-point subnetting semantics. Ranges with host bits set and
// IPv6 ranges are rejected.
func parseHostBlock(cidr string) (hostBlock, error) {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return hostBlock{}, err
	}

	v4 := ipnet.IP.To4()
	if v4 == nil {
		return hostBlock{}, fmt.Errorf("only IPv4 ranges are supported: %s", cidr)
	}

	if !ip.Equal(ipnet.IP) {
		return hostBlock{}, fmt.Errorf("%s has host bits set", cidr)
	}

	ones, _ := ipnet.Mask.Size()
	base := binary.BigEndian.Uint32(v4)
	size := uint64(1) << (addressBits - uint(ones))

	switch {
	case ones == addressBits:
		return hostBlock{first: base, last: base}, nil
	case ones == addressBits-1:
		return hostBlock{first: base, last: base + 1}, nil
	default:
		return hostBlock{first: base + 1, last: base + uint32(size) - 2}, nil
	}
}

// formatAddr renders an integer address back into dotted-quad form.
func formatAddr(addr uint32) string {
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, addr)
	return ip.String()
}
