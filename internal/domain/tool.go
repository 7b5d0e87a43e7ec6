package domain

import "time"

// Category is one of the closed set of tool category labels.
type Category string

const (
	CategoryNetworkSecurity       Category = "Network Security"
	CategoryWebSecurity           Category = "Web Security"
	CategoryPenetrationTesting    Category = "Penetration Testing"
	CategoryOSINT                 Category = "OSINT"
	CategoryMalwareAnalysis       Category = "Malware Analysis"
	CategoryPasswordSecurity      Category = "Password Security"
	CategoryWirelessSecurity      Category = "Wireless Security"
	CategoryNetworkAnalysis       Category = "Network Analysis"
	CategoryVulnerabilityScanning Category = "Vulnerability Scanning"
)

// DefaultCategory is assigned when no classification rule matches.
const DefaultCategory = CategoryNetworkSecurity

// Categories lists every known category label in classification priority order.
func Categories() []Category {
	return []Category{
		CategoryNetworkSecurity,
		CategoryWebSecurity,
		CategoryPenetrationTesting,
		CategoryOSINT,
		CategoryMalwareAnalysis,
		CategoryPasswordSecurity,
		CategoryWirelessSecurity,
		CategoryNetworkAnalysis,
		CategoryVulnerabilityScanning,
	}
}

// Maturity is a coarse lifecycle classification derived from popularity and
// update recency.
type Maturity string

const (
	MaturityAlpha      Maturity = "alpha"
	MaturityBeta       Maturity = "beta"
	MaturityStable     Maturity = "stable"
	MaturityProduction Maturity = "production"
)

// ToolRecord is the normalized representation of one discovered security
// tool. Records are constructed once per aggregation call and never mutated.
type ToolRecord struct {
	ID            string    `json:"id" mapstructure:"id"`
	Name          string    `json:"name" mapstructure:"name"`
	Author        string    `json:"author" mapstructure:"author"`
	Description   string    `json:"description" mapstructure:"description"`
	AvatarURL     string    `json:"avatarUrl" mapstructure:"avatarUrl"`
	Icon          string    `json:"icon" mapstructure:"icon"`
	Category      Category  `json:"category" mapstructure:"category"`
	Tags          []string  `json:"tags" mapstructure:"tags"`
	Stars         int       `json:"stars" mapstructure:"stars"`
	Forks         int       `json:"forks" mapstructure:"forks"`
	OpenIssues    int       `json:"openIssues" mapstructure:"openIssues"`
	Rating        float64   `json:"rating" mapstructure:"rating"`
	Language      string    `json:"language" mapstructure:"language"`
	Maturity      Maturity  `json:"maturity" mapstructure:"maturity"`
	LastUpdated   time.Time `json:"lastUpdated" mapstructure:"lastUpdated"`
	RepositoryURL string    `json:"repositoryUrl" mapstructure:"repositoryUrl"`
	Trending      bool      `json:"trending" mapstructure:"trending"`
	Verified      bool      `json:"securityVerified" mapstructure:"securityVerified"`
	License       string    `json:"license" mapstructure:"license"`
	SizeFormatted string    `json:"size" mapstructure:"size"`
}

// FilterParams narrows a remote search. Zero values mean "not set"; defaults
// are chosen by the entry point, not here.
type FilterParams struct {
	// MinStars is a lower bound on stargazer count included in the query.
	MinStars int
	// Language restricts the query to one source-reported language.
	Language string
	// UpdatedAfter restricts the query to repositories pushed at or after
	// this date.
	UpdatedAfter time.Time
	// Topics restricts the query by topic tag.
	Topics []string
}

// SearchResult is a ranked sequence of tool records plus a degradation flag
// the presentation layer can surface to the user.
type SearchResult struct {
	Tools []ToolRecord `json:"tools"`
	// Fallback reports that the curated local dataset was served because
	// the remote provider was unavailable, rate limited, or empty.
	Fallback bool `json:"fallback"`
}
