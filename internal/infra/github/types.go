package github

// Repository is the subset of a search-result item the aggregator consumes.
type Repository struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Owner       Owner    `json:"owner"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Watchers    int      `json:"watchers_count"`
	OpenIssues  int      `json:"open_issues_count"`
	UpdatedAt   string   `json:"updated_at"`
	PushedAt    string   `json:"pushed_at"`
	HTMLURL     string   `json:"html_url"`
	License     *License `json:"license"`
	SizeKB      int      `json:"size"`
}

type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type License struct {
	Name string `json:"name"`
}

type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}
