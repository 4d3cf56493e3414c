package httputil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidIPv6 is returned when an address cannot be normalised.
var ErrInvalidIPv6 = errors.New("httputil: invalid IPv6 address")

var ipv6Pattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)

// IP6Normalize expands an IPv6 literal to eight colon separated groups so it
// can be validated with a simple pattern. A "::" run is replaced with the
// zero groups it stands for and a trailing dotted IPv4 part is converted to
// two hexadecimal groups. An address that already has eight plain groups is
// returned unchanged.
func IP6Normalize(addr string) (string, error) {
	if strings.Contains(addr, ":::") {
		return "", invalidIPv6(addr, "\":::\" run")
	}
	if strings.Count(addr, "::") > 1 {
		return "", invalidIPv6(addr, "more than one \"::\"")
	}

	groups := strings.Split(addr, ":")
	converted := false
	if last := groups[len(groups)-1]; strings.Contains(last, ".") {
		high, low, err := ipv4Groups(last)
		if err != nil {
			return "", invalidIPv6(addr, err.Error())
		}
		groups = append(groups[:len(groups)-1], high, low)
		converted = true
	}

	if !strings.Contains(addr, "::") {
		if len(groups) != 8 {
			return "", invalidIPv6(addr, fmt.Sprintf("%d groups", len(groups)))
		}
		for _, group := range groups {
			if group == "" {
				return "", invalidIPv6(addr, "empty group")
			}
		}
		if converted {
			return strings.Join(groups, ":"), nil
		}
		return addr, nil
	}

	head, tail, _ := strings.Cut(strings.Join(groups, ":"), "::")
	headGroups, err := splitGroups(head)
	if err != nil {
		return "", invalidIPv6(addr, err.Error())
	}
	tailGroups, err := splitGroups(tail)
	if err != nil {
		return "", invalidIPv6(addr, err.Error())
	}

	pad := 8 - len(headGroups) - len(tailGroups)
	if pad < 1 {
		return "", invalidIPv6(addr, "too many groups")
	}

	out := make([]string, 0, 8)
	out = append(out, headGroups...)
	for i := 0; i < pad; i++ {
		out = append(out, "0")
	}
	out = append(out, tailGroups...)
	return strings.Join(out, ":"), nil
}

// IsValidIPv6 reports whether addr normalises to eight hexadecimal groups.
func IsValidIPv6(addr string) bool {
	normalized, err := IP6Normalize(addr)
	if err != nil {
		return false
	}
	return ipv6Pattern.MatchString(normalized)
}

func splitGroups(part string) ([]string, error) {
	if part == "" {
		return nil, nil
	}
	groups := strings.Split(part, ":")
	for _, group := range groups {
		if group == "" {
			return nil, errors.New("empty group")
		}
	}
	return groups, nil
}

func ipv4Groups(dotted string) (string, string, error) {
	parts := strings.Split(dotted, ".")
	if len(parts) != 4 {
		return "", "", fmt.Errorf("ipv4 suffix %q", dotted)
	}
	var octets [4]int64
	for i, part := range parts {
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil || value < 0 || value > 255 {
			return "", "", fmt.Errorf("ipv4 octet %q", part)
		}
		octets[i] = value
	}
	high := octets[0]<<8 + octets[1]
	low := octets[2]<<8 + octets[3]
	return strconv.FormatInt(high, 16), strconv.FormatInt(low, 16), nil
}

func invalidIPv6(addr, reason string) error {
	return fmt.Errorf("httputil: normalize %q: %s: %w", addr, reason, ErrInvalidIPv6)
}
