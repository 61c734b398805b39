package requestcontext

import (
	"context"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

type clientIPKey struct{}

type WithClientIPConfig struct {
	// TrustedHeader is a header carrying the client IP set by a trusted proxy (e.g. X-Real-IP, CF-Connecting-IP).
	// It takes precedence over X-Forwarded-For when it holds a valid IP.
	TrustedHeader string `mapstructure:"trusted_proxies_header"`

	// TrustedProxiesIP lists the CIDR ranges of every proxy in front of the server.
	// When set, the client IP is the last X-Forwarded-For entry outside these ranges.
	TrustedProxiesIP []string `mapstructure:"trusted_proxies_ip"`

	// EnableRejectMalformedRequest rejects proxied requests with 403 when no client IP can be trusted.
	EnableRejectMalformedRequest bool `mapstructure:"enable_reject_malformed_request"`
}

// WithClientIP stores the client IP in the request context.
func WithClientIP(config WithClientIPConfig) (Option, error) {
	trustedProxies, err := parseCIDRs(config.TrustedProxiesIP)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trusted proxies")
	}

	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		if config.TrustedHeader != "" {
			if ip := net.ParseIP(c.Get(config.TrustedHeader)); ip != nil {
				return context.WithValue(ctx, clientIPKey{}, ip.String()), nil
			}
		}

		forwarded := c.IPs()
		// direct request from client
		if len(forwarded) == 0 {
			return context.WithValue(ctx, clientIPKey{}, c.IP()), nil
		}

		if len(trustedProxies) > 0 {
			for i := len(forwarded) - 1; i >= 0; i-- {
				if ip := net.ParseIP(forwarded[i]); ip != nil && !isTrusted(trustedProxies, ip) {
					return context.WithValue(ctx, clientIPKey{}, ip.String()), nil
				}
			}
		} else if config.EnableRejectMalformedRequest {
			logger.WarnContext(ctx, "cannot trust X-Forwarded-For without trusted proxies, rejecting request",
				slogx.String("event", "requestcontext/ip_spoofing_detected"),
				slogx.String("ip", c.IP()),
				slogx.Any("ips", forwarded),
			)
			return nil, requestcontextError{
				status:  fiber.StatusForbidden,
				message: "not allowed to access",
			}
		}

		return context.WithValue(ctx, clientIPKey{}, forwarded[0]), nil
	}, nil
}

// GetClientIP returns the client IP stored by WithClientIP, or an empty string.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

func isTrusted(proxies []*net.IPNet, ip net.IP) bool {
	for _, r := range proxies {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDRs(ranges []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(ranges))
	for _, r := range ranges {
		_, ipnet, err := net.ParseCIDR(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse CIDR for %q", r)
		}
		nets = append(nets, ipnet)
	}
	return nets, nil
}
