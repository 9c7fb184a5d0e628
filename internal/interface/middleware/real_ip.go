package middleware

import (
	"fmt"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP into Gin context (key: "real_ip") for rate limiting.
// X-Real-IP and X-Forwarded-For are read only when the direct peer is one of
// the trusted proxies (IPs or CIDRs); any other peer is keyed by its own address.
func RealIP(trusted []string) (gin.HandlerFunc, error) {
	nets, err := parseNets(trusted)
	if err != nil {
		return nil, err
	}
	return func(c *gin.Context) {
		c.Set("real_ip", realIP(c, nets))
		c.Next()
	}, nil
}

func realIP(c *gin.Context, trusted []*net.IPNet) string {
	peer := remoteIP(c.Request.RemoteAddr)
	if peer == nil {
		return c.ClientIP()
	}
	if !inNets(trusted, peer) {
		return peer.String()
	}
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	// right-most hop that is not one of our proxies; earlier hops are client supplied
	hops := strings.Split(c.GetHeader("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			break
		}
		if !inNets(trusted, ip) {
			return ip.String()
		}
	}
	return peer.String()
}

func remoteIP(addr string) net.IP {
	host, _, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		host = addr
	}
	return net.ParseIP(host)
}

func parseNets(list []string) ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.Contains(s, "/") {
			ip := net.ParseIP(s)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: invalid ip", s)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func inNets(nets []*net.IPNet, ip net.IP) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
