package vault

import (
	"net/url"
	"strings"
)

// NormalizeDomain reduces a URL to its canonical host for grouping: a scheme
// is defaulted before parsing, the host is lower-cased, and exactly one
// leading "www." label is stripped. Returns "" when no host can be derived.
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	toParse := raw
	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "//") {
		toParse = "https://" + raw
	}

	parsed, err := url.Parse(toParse)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return host
}

// NormalizeURL normalizes a full URL for comparison: scheme and host are
// lower-cased, a trailing slash is stripped from the path (except a bare "/"),
// and the query is preserved. Strings that do not parse as a URL are returned
// trimmed and lower-cased.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme == "" && parsed.Host == "") {
		return strings.ToLower(raw)
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Host)
	path := parsed.Path
	if strings.HasSuffix(path, "/") && path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	normalized := scheme + "://" + host + path
	if parsed.RawQuery != "" {
		normalized += "?" + parsed.RawQuery
	}
	return normalized
}

// NormalizeTitle normalizes a title for grouping: trimmed, lower-cased, with
// internal whitespace runs collapsed to single spaces.
func NormalizeTitle(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	return strings.Join(fields, " ")
}

// DomainOrName derives the canonical site identity of an item: the normalized
// domain of PrimaryURL when a URL exists, otherwise the normalized title.
func DomainOrName(it Item) string {
	if d := NormalizeDomain(it.PrimaryURL); d != "" {
		return d
	}
	return NormalizeTitle(it.Title)
}

// LoginID derives the normalized login identifier of an item. The username is
// lower-cased after trimming; with emailEquivalence enabled (the default), an
// empty username falls back to the record's email-bearing field so that
// username-keyed and email-keyed exports of the same account compare equal.
func LoginID(it Item, emailEquivalence bool) string {
	candidate := strings.TrimSpace(it.Username)
	if emailEquivalence && candidate == "" {
		candidate = EmailValue(it)
	}
	return strings.ToLower(candidate)
}
