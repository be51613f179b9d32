package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeImageURL checks that rawURL is an absolute http(s) URL and encodes
// any raw spaces. Catalog image URLs occasionally carry unencoded spaces.
func NormalizeImageURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	if err := ValidateMediaURL(rawURL); err != nil {
		return "", err
	}
	return EncodeURLWithSpaces(rawURL)
}

// ValidateMediaURL only accepts absolute http and https URLs with a host.
func ValidateMediaURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// EncodeURLWithSpaces percent-encodes raw spaces in the path and query.
func EncodeURLWithSpaces(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	encoded := parsedURL.Scheme + "://" + parsedURL.Host + parsedURL.EscapedPath()
	if parsedURL.RawQuery != "" {
		encoded += "?" + strings.ReplaceAll(parsedURL.RawQuery, " ", "%20")
	}
	return encoded, nil
}
