package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		repo     github.Repository
		expected domain.Category
	}{
		{
			name:     "nmap by name",
			repo:     github.Repository{Name: "nmap"},
			expected: domain.CategoryNetworkSecurity,
		},
		{
			name:     "sql injection by description",
			repo:     github.Repository{Name: "sqlmap", Description: "Automatic SQL injection tool"},
			expected: domain.CategoryWebSecurity,
		},
		{
			name:     "exploit framework",
			repo:     github.Repository{Name: "some-framework", Description: "exploit development platform"},
			expected: domain.CategoryPenetrationTesting,
		},
		{
			name:     "osint from topics",
			repo:     github.Repository{Name: "harvester", Topics: []string{"osint", "recon"}},
			expected: domain.CategoryOSINT,
		},
		{
			name:     "malware analysis",
			repo:     github.Repository{Name: "cuckoo", Description: "automated malware sandbox"},
			expected: domain.CategoryMalwareAnalysis,
		},
		{
			name:     "password cracking conjunction",
			repo:     github.Repository{Name: "cracker", Description: "password brute forcing"},
			expected: domain.CategoryPasswordSecurity,
		},
		{
			name:     "wireless",
			repo:     github.Repository{Name: "wifite", Description: "wifi auditing"},
			expected: domain.CategoryWirelessSecurity,
		},
		{
			name:     "packet capture",
			repo:     github.Repository{Name: "sniffer", Description: "packet capture library"},
			expected: domain.CategoryNetworkAnalysis,
		},
		{
			name:     "nuclei scanner",
			repo:     github.Repository{Name: "nuclei"},
			expected: domain.CategoryVulnerabilityScanning,
		},
		{
			name:     "unmatched content gets the default",
			repo:     github.Repository{Name: "dotfiles", Description: "my shell setup"},
			expected: domain.DefaultCategory,
		},
		{
			name:     "empty repository gets the default",
			repo:     github.Repository{},
			expected: domain.DefaultCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.repo))
		})
	}
}

// Earlier rules win: content matching both network-security and
// vulnerability-scanning keywords classifies as network security.
func TestClassify_PriorityOrder(t *testing.T) {
	repo := github.Repository{Name: "nmap", Description: "vulnerability scan helper"}
	assert.Equal(t, domain.CategoryNetworkSecurity, Classify(repo))
}

func TestClassify_AlwaysKnownLabel(t *testing.T) {
	known := make(map[domain.Category]bool)
	for _, category := range domain.Categories() {
		known[category] = true
	}

	repos := []github.Repository{
		{},
		{Name: "x"},
		{Name: "nmap", Description: "port scan", Topics: []string{"wifi"}},
		{Description: "password crack wordlist exploit"},
	}
	for _, repo := range repos {
		assert.True(t, known[Classify(repo)], "category %q not in the closed set", Classify(repo))
	}
}

func TestExtractTags_Cap(t *testing.T) {
	repo := github.Repository{
		Name:        "netweb",
		Description: "network web penetration vulnerability forensic",
		Language:    "Go",
		Topics:      []string{"a", "b", "c", "d"},
	}

	tags := ExtractTags(repo)
	assert.Len(t, tags, domain.MaxTags)
	// Topics come first, then language.
	assert.Equal(t, []string{"a", "b", "c", "d", "Go Language"}, tags)
}

func TestExtractTags_Order(t *testing.T) {
	repo := github.Repository{
		Name:        "tool",
		Description: "network scanner",
		Language:    "Rust",
		Topics:      []string{"security"},
	}

	tags := ExtractTags(repo)
	assert.Equal(t, []string{"security", "Rust Language", "Network Security"}, tags)
}

func TestExtractTags_NoLanguage(t *testing.T) {
	tags := ExtractTags(github.Repository{Name: "web-fuzzer"})
	assert.Equal(t, []string{"Web Security"}, tags)
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		repo github.Repository
		icon string
	}{
		{github.Repository{Name: "nmap"}, "Network"},
		{github.Repository{Name: "burp-helper"}, "Globe"},
		{github.Repository{Name: "x", Description: "packet capture"}, "Activity"},
		{github.Repository{Name: "metasploit-framework"}, "Zap"},
		{github.Repository{Name: "sqlmap"}, "Database"},
		{github.Repository{Name: "hashcat"}, "Key"},
		{github.Repository{Name: "aircrack-ng"}, "Wifi"},
		{github.Repository{Name: "recon-ng"}, "Eye"},
		{github.Repository{Name: "something-else"}, "Shield"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.icon, IconFor(tt.repo), "repo %q", tt.repo.Name)
	}
}
