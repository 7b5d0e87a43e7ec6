package aggregator

import (
	"fmt"
	"strings"
	"time"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

// languageBonuses diversifies ranking across ecosystems. Unlisted languages
// still get a small positive bonus.
var languageBonuses = map[string]float64{
	"Python":     15,
	"Go":         12,
	"Rust":       10,
	"C":          8,
	"C++":        8,
	"JavaScript": 6,
	"Shell":      5,
	"PowerShell": 5,
	"Ruby":       4,
	"Java":       4,
	"C#":         3,
}

const defaultLanguageBonus = 2

func languageBonus(language string) float64 {
	if bonus, ok := languageBonuses[language]; ok {
		return bonus
	}
	return defaultLanguageBonus
}

// exceptionalTools and topSecurityOrgs gate the trending flag: popularity
// alone must never make a tool trending.
var exceptionalTools = map[string]bool{
	"metasploit-framework": true,
	"nuclei":               true,
	"burp-extensions":      true,
	"sqlmap":               true,
	"nmap":                 true,
	"aircrack-ng":          true,
	"hashcat":              true,
	"wireshark":            true,
	"volatility":           true,
	"radare2":              true,
	"ghidra":               true,
	"theharvester":         true,
	"sherlock":             true,
	"subfinder":            true,
}

var topSecurityOrgs = map[string]bool{
	"rapid7":           true,
	"projectdiscovery": true,
	"nmap":             true,
	"sqlmapproject":    true,
	"portswigger":      true,
	"zaproxy":          true,
	"owasp":            true,
}

// trustedTools and trustedOrgs gate the verified flag.
var trustedTools = map[string]bool{
	"metasploit-framework": true,
	"nmap":                 true,
	"sqlmap":               true,
	"nuclei":               true,
	"wireshark":            true,
	"hashcat":              true,
	"john":                 true,
	"aircrack-ng":          true,
	"volatility":           true,
	"yara":                 true,
	"radare2":              true,
	"theharvester":         true,
	"sherlock":             true,
	"masscan":              true,
	"amass":                true,
	"subfinder":            true,
	"gobuster":             true,
	"ffuf":                 true,
	"hydra":                true,
	"nikto":                true,
	"wpscan":               true,
}

var trustedOrgs = map[string]bool{
	"rapid7":               true,
	"nmap":                 true,
	"sqlmapproject":        true,
	"projectdiscovery":     true,
	"wireshark":            true,
	"hashcat":              true,
	"openwall":             true,
	"aircrack-ng":          true,
	"volatilityfoundation": true,
	"virustotal":           true,
	"radareorg":            true,
}

func daysSince(now time.Time, updatedAt time.Time) float64 {
	return now.Sub(updatedAt).Hours() / 24
}

// popularityScore ranks repositories by stars, forks, watcher and issue
// counts, a linearly decaying recency bonus, and a small language bonus.
func popularityScore(repo github.Repository, updatedAt time.Time, now time.Time) float64 {
	days := daysSince(now, updatedAt)
	recentBonus := 50 - days
	if recentBonus < 0 {
		recentBonus = 0
	}
	issueBonus := float64(30 - repo.OpenIssues)
	if issueBonus < 0 {
		issueBonus = 0
	}
	return float64(repo.Stars)*2 +
		float64(repo.Forks)*1.5 +
		float64(repo.Watchers) +
		issueBonus +
		recentBonus +
		languageBonus(repo.Language)
}

// rating starts at 3.0 and adds bonuses for popularity, recency,
// documentation, and licensing, clamped to [1.0, 5.0].
func rating(repo github.Repository, updatedAt time.Time, now time.Time) float64 {
	value := 3.0

	switch {
	case repo.Stars > 1000:
		value += 1.0
	case repo.Stars > 100:
		value += 0.5
	}

	days := daysSince(now, updatedAt)
	switch {
	case days < 30:
		value += 0.5
	case days < 90:
		value += 0.2
	}

	if len(repo.Description) > 50 {
		value += 0.3
	}
	if repo.License != nil {
		value += 0.2
	}

	if value > 5.0 {
		value = 5.0
	}
	if value < 1.0 {
		value = 1.0
	}
	return value
}

func maturity(repo github.Repository, updatedAt time.Time, now time.Time) domain.Maturity {
	days := daysSince(now, updatedAt)
	switch {
	case repo.Stars > 5000 && repo.Forks > 500 && days < 30:
		return domain.MaturityProduction
	case repo.Stars > 1000 && repo.Forks > 100 && days < 90:
		return domain.MaturityStable
	case repo.Stars > 100 && repo.Forks > 10:
		return domain.MaturityBeta
	default:
		return domain.MaturityAlpha
	}
}

// isTrending requires recent activity, very high popularity, strong
// adoption, and allow-list membership all at once.
func isTrending(repo github.Repository, updatedAt time.Time, now time.Time) bool {
	name := strings.ToLower(repo.Name)
	owner := strings.ToLower(repo.Owner.Login)

	activelyMaintained := daysSince(now, updatedAt) < 30
	veryPopular := repo.Stars > 5000
	strongCommunity := repo.Forks > 500

	return activelyMaintained && veryPopular && strongCommunity &&
		(exceptionalTools[name] || topSecurityOrgs[owner])
}

// isVerified requires license and description quality plus either allow-list
// membership or extreme popularity.
func isVerified(repo github.Repository) bool {
	name := strings.ToLower(repo.Name)
	owner := strings.ToLower(repo.Owner.Login)

	hasLicense := repo.License != nil && repo.License.Name != ""
	hasDescription := len(repo.Description) > 50
	if !hasLicense || !hasDescription {
		return false
	}

	highlyAdopted := repo.Stars > 10000 && repo.Forks > 500
	return trustedTools[name] || trustedOrgs[owner] || highlyAdopted
}

func formatSize(sizeKB int) string {
	if sizeKB > 1024 {
		return fmt.Sprintf("%.1f MB", float64(sizeKB)/1024)
	}
	return fmt.Sprintf("%d KB", sizeKB)
}
