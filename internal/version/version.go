// Package version compares the running build against the latest published
// release.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// ReleasesURL is the endpoint for the latest release.
	ReleasesURL = "https://api.github.com/repos/brpalette/brpalette/releases/latest"
	// RequestTimeout bounds the release lookup.
	RequestTimeout = 10 * time.Second
)

// UpdateInfo describes the newest release relative to the running build.
type UpdateInfo struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	ReleaseURL      string `json:"release_url"`
	UpdateAvailable bool   `json:"update_available"`
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker looks up the latest release at URL.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a Checker for the public releases endpoint.
func NewChecker() *Checker {
	return &Checker{
		URL:    ReleasesURL,
		Client: &http.Client{Timeout: RequestTimeout},
	}
}

// Check reports whether a release newer than current exists. Development
// builds ("dev" or empty) are never checked and return nil, nil.
func (c *Checker) Check(ctx context.Context, current string) (*UpdateInfo, error) {
	if current == "dev" || current == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "brpalette-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checking for updates: %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}

	return &UpdateInfo{
		CurrentVersion:  current,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: IsNewer(normalize(rel.TagName), normalize(current)),
	}, nil
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// IsNewer compares MAJOR.MINOR.PATCH strings; suffixes like "-beta" are
// ignored.
func IsNewer(latest, current string) bool {
	l, c := parse(latest), parse(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parse(v string) [3]int {
	var parts [3]int
	segments := strings.Split(v, ".")
	for i := 0; i < len(segments) && i < 3; i++ {
		num := segments[i]
		if idx := strings.IndexAny(num, "-+"); idx != -1 {
			num = num[:idx]
		}
		_, _ = fmt.Sscanf(num, "%d", &parts[i])
	}
	return parts
}
