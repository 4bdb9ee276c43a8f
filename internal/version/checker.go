// Package version reports the build version and looks up newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// ReleasesURL is the latest-release endpoint of the printcat repository
	ReleasesURL  = "https://api.github.com/repos/studiowebux/printcat/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release is the subset of the GitHub release payload we read
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Version is the tag without its "v" prefix
func (r Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Checker queries a release endpoint
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker for the public release feed
func NewChecker() *Checker {
	return &Checker{
		URL:    ReleasesURL,
		Client: &http.Client{Timeout: checkTimeout},
	}
}

// Latest fetches the newest published release
func (c *Checker) Latest(ctx context.Context, current string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "printcat/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &release, nil
}

// UpdateAvailable reports whether the latest release is newer than current.
// The release is returned even when no update is available.
func (c *Checker) UpdateAvailable(ctx context.Context, current string) (bool, *Release, error) {
	current = strings.TrimPrefix(current, "v")
	release, err := c.Latest(ctx, current)
	if err != nil {
		return false, nil, err
	}
	latest := release.Version()
	return latest != "" && IsNewer(latest, current), release, nil
}

// IsNewer compares dotted numeric versions. Pre-release and build
// suffixes are ignored, missing parts count as zero.
func IsNewer(latest, current string) bool {
	a, b := parseVersion(latest), parseVersion(current)
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}

	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var parts []int
	for _, part := range strings.Split(version, ".") {
		if num, err := strconv.Atoi(part); err == nil {
			parts = append(parts, num)
		}
	}
	return parts
}
