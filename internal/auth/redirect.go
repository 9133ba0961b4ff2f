package auth

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsafeRedirectTarget is returned for a "next" target that would
// redirect the browser off the current host.
var ErrUnsafeRedirectTarget = errors.New("unsafe redirect target")

// CheckRedirectTarget validates a post-login redirect target against
// open redirects. Relative paths are accepted; absolute URLs are
// accepted only when the scheme is http or https and the host matches
// the requesting host exactly.
func CheckRedirectTarget(target, host string) error {
	if target == "" {
		return ErrUnsafeRedirectTarget
	}

	// Protocol-relative URLs (//evil.example/x) resolve cross-origin
	if strings.HasPrefix(target, "//") {
		return ErrUnsafeRedirectTarget
	}

	// Backslashes are treated as slashes by some browsers
	if strings.Contains(target, "\\") {
		return ErrUnsafeRedirectTarget
	}

	if strings.HasPrefix(target, "/") {
		return nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return ErrUnsafeRedirectTarget
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrUnsafeRedirectTarget
	}
	if u.Host == "" || u.Host != host {
		return ErrUnsafeRedirectTarget
	}

	return nil
}

// SanitizeRedirect returns target when it passes CheckRedirectTarget,
// otherwise the fallback.
func SanitizeRedirect(target, host, fallback string) string {
	if err := CheckRedirectTarget(target, host); err != nil {
		return fallback
	}
	return target
}
