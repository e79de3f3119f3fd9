package utils

import (
	"errors"
	"net"
)

var ErrNoLocalIP = errors.New("no non-loopback IPv4 address found")

// LocalIP returns the first non-loopback IPv4 address of this host.
func LocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	return firstIPv4(addrs)
}

func firstIPv4(addrs []net.Addr) (string, error) {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}

	return "", ErrNoLocalIP
}
