package classify

import (
	"regexp"
	"strings"
)

// Environment detections used to pre-fill Jira custom fields. These are
// deliberately coarse keyword checks, same as the rubric rules.

// DetectComponent guesses the affected product component from ticket text.
func DetectComponent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "dmc"):
		return "DMC"
	case strings.Contains(lower, "redis"):
		return "Redis"
	case strings.Contains(lower, "cluster"):
		return "Cluster"
	default:
		return "Unknown"
	}
}

// DetectPlatform guesses the cloud platform the ticket concerns.
func DetectPlatform(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "azure"):
		return "Azure"
	case strings.Contains(lower, "aws"):
		return "AWS"
	case strings.Contains(lower, "gcp"):
		return "GCP"
	default:
		return "Unknown"
	}
}

var (
	clusterIDPattern = regexp.MustCompile(`(?i)cluster[:\s]+([^\s,]+)`)
	accountIDPattern = regexp.MustCompile(`(?i)account[:\s]+([^\s,]+)`)
	cacheNamePattern = regexp.MustCompile(`(?i)cache name[:\s]+([^\s,]+)`)
	regionPattern    = regexp.MustCompile(`(?i)region[:\s]+([^\s,]+)`)
)

// Infrastructure holds identifiers scraped from ticket text.
type Infrastructure struct {
	ClusterID string
	AccountID string
	CacheName string
	Region    string
}

// ExtractInfrastructure pulls cluster, account, cache, and region
// identifiers out of free text.
func ExtractInfrastructure(text string) Infrastructure {
	get := func(re *regexp.Regexp) string {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return ""
	}
	return Infrastructure{
		ClusterID: get(clusterIDPattern),
		AccountID: get(accountIDPattern),
		CacheName: get(cacheNamePattern),
		Region:    get(regionPattern),
	}
}
