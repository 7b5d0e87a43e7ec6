package aggregator

import (
	"strconv"
	"time"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

const noDescription = "No description available"

// Transform maps one raw repository into a ToolRecord as of now.
func Transform(repo github.Repository, now time.Time) domain.ToolRecord {
	updatedAt := parseTimestamp(repo.UpdatedAt, now)

	description := repo.Description
	if description == "" {
		description = noDescription
	}
	language := repo.Language
	if language == "" {
		language = "Unknown"
	}
	license := "Unknown"
	if repo.License != nil && repo.License.Name != "" {
		license = repo.License.Name
	}

	return domain.ToolRecord{
		ID:            strconv.FormatInt(repo.ID, 10),
		Name:          repo.Name,
		Author:        repo.Owner.Login,
		Description:   description,
		AvatarURL:     repo.Owner.AvatarURL,
		Icon:          IconFor(repo),
		Category:      Classify(repo),
		Tags:          ExtractTags(repo),
		Stars:         repo.Stars,
		Forks:         repo.Forks,
		OpenIssues:    repo.OpenIssues,
		Rating:        rating(repo, updatedAt, now),
		Language:      language,
		Maturity:      maturity(repo, updatedAt, now),
		LastUpdated:   updatedAt,
		RepositoryURL: repo.HTMLURL,
		Trending:      isTrending(repo, updatedAt, now),
		Verified:      isVerified(repo),
		License:       license,
		SizeFormatted: formatSize(repo.SizeKB),
	}
}

// parseTimestamp tolerates a missing or malformed updated_at by treating the
// repository as stale rather than failing the whole transform.
func parseTimestamp(value string, now time.Time) time.Time {
	if value == "" {
		return now.AddDate(-1, 0, 0)
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return now.AddDate(-1, 0, 0)
	}
	return parsed
}

// dedupe keeps the first occurrence of each repository id.
func dedupe(repos []github.Repository) []github.Repository {
	seen := make(map[int64]bool, len(repos))
	out := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if seen[repo.ID] {
			continue
		}
		seen[repo.ID] = true
		out = append(out, repo)
	}
	return out
}
