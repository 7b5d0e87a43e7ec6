package aggregator

import (
	"strings"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

// matcher is a predicate over the lowercased name+description+topics blob.
type matcher func(content string) bool

func anyOf(keywords ...string) matcher {
	return func(content string) bool {
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				return true
			}
		}
		return false
	}
}

func allOf(matchers ...matcher) matcher {
	return func(content string) bool {
		for _, m := range matchers {
			if !m(content) {
				return false
			}
		}
		return true
	}
}

func either(matchers ...matcher) matcher {
	return func(content string) bool {
		for _, m := range matchers {
			if m(content) {
				return true
			}
		}
		return false
	}
}

type categoryRule struct {
	category domain.Category
	match    matcher
}

// categoryRules is evaluated in order; the first match wins. Unmatched
// content gets domain.DefaultCategory.
var categoryRules = []categoryRule{
	{domain.CategoryNetworkSecurity, either(
		anyOf("nmap", "masscan", "port scan"),
		allOf(anyOf("network"), anyOf("scan", "discover")),
	)},
	{domain.CategoryWebSecurity, either(
		anyOf("burp", "sql injection", "sqlmap", "xss", "web application", "directory-buster", "nikto", "wpscan"),
		allOf(anyOf("web"), anyOf("vulnerab", "scan")),
	)},
	{domain.CategoryPenetrationTesting, anyOf(
		"metasploit", "exploit", "penetration", "pentest", "payload",
		"backdoor", "social engineer", "red team", "post-exploitation",
	)},
	{domain.CategoryOSINT, either(
		anyOf("osint", "reconnaissance", "recon", "theharvester", "sherlock",
			"shodan", "maltego", "gathering", "footprint", "information gathering"),
		allOf(anyOf("subdomain"), anyOf("find")),
	)},
	{domain.CategoryMalwareAnalysis, either(
		anyOf("malware", "forensic", "volatility", "yara", "reverse engineer",
			"binwalk", "disassemb", "autopsy", "memory analysis"),
		allOf(anyOf("analysis"), anyOf("binary", "file")),
	)},
	{domain.CategoryPasswordSecurity, either(
		anyOf("hashcat", "john", "hydra", "wordlist"),
		allOf(anyOf("password"), anyOf("crack", "brute")),
		allOf(anyOf("hash"), anyOf("crack")),
	)},
	{domain.CategoryWirelessSecurity, anyOf(
		"aircrack", "wifi", "wireless", "wpa", "wep", "bluetooth",
	)},
	{domain.CategoryNetworkAnalysis, anyOf(
		"wireshark", "packet", "tcpdump", "network analysis", "traffic analysis", "protocol analy",
	)},
	{domain.CategoryVulnerabilityScanning, either(
		anyOf("nuclei", "openvas", "nessus", "vuln scan", "security scan"),
		allOf(anyOf("vulnerability"), anyOf("scan")),
	)},
}

// classifyContent returns the lowercased classification blob for a repository.
func classifyContent(repo github.Repository) string {
	parts := []string{repo.Name, repo.Description, strings.Join(repo.Topics, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}

// Classify assigns the first matching category label.
func Classify(repo github.Repository) domain.Category {
	content := classifyContent(repo)
	for _, rule := range categoryRules {
		if rule.match(content) {
			return rule.category
		}
	}
	return domain.DefaultCategory
}

type iconRule struct {
	icon  string
	match matcher
}

var iconRules = []iconRule{
	{"Network", anyOf("nmap", "network")},
	{"Globe", anyOf("burp", "web")},
	{"Activity", anyOf("wireshark", "packet")},
	{"Zap", anyOf("metasploit", "exploit")},
	{"Database", anyOf("sqlmap", "sql")},
	{"Key", anyOf("hashcat", "password")},
	{"Wifi", anyOf("aircrack", "wifi")},
	{"Eye", anyOf("recon", "osint")},
}

const defaultIcon = "Shield"

// IconFor picks a display icon name from name/description keywords.
func IconFor(repo github.Repository) string {
	content := strings.ToLower(repo.Name + " " + repo.Description)
	for _, rule := range iconRules {
		if rule.match(content) {
			return rule.icon
		}
	}
	return defaultIcon
}

var tagRules = []struct {
	tag   string
	match matcher
}{
	{"Network Security", anyOf("network")},
	{"Web Security", anyOf("web")},
	{"Penetration Testing", anyOf("penetration", "pentest")},
	{"Vulnerability Assessment", anyOf("vulnerability", "vuln")},
	{"Digital Forensics", anyOf("forensic")},
}

// ExtractTags builds the tag list: topics first, then the source language,
// then heuristic tags, capped at domain.MaxTags.
func ExtractTags(repo github.Repository) []string {
	tags := make([]string, 0, domain.MaxTags)
	tags = append(tags, repo.Topics...)

	if repo.Language != "" {
		tags = append(tags, repo.Language+" Language")
	}

	content := strings.ToLower(repo.Name + " " + repo.Description)
	for _, rule := range tagRules {
		if rule.match(content) {
			tags = append(tags, rule.tag)
		}
	}

	if len(tags) > domain.MaxTags {
		tags = tags[:domain.MaxTags]
	}
	return tags
}
