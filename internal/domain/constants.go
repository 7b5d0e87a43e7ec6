package domain

import "time"

const (
	DefaultProviderBaseURL    = "https://api.github.com"
	DefaultProviderTimeout    = 10 * time.Second
	DefaultProviderPerPage    = 100
	DefaultListenAddress      = "0.0.0.0:8080"
	DefaultTrendingMinStars   = 50
	DefaultTrendingWindowDays = 60
	DefaultTrendingLimit      = 15
	DefaultSearchMinStars     = 10
	MaxQueryOperators         = 5
	MaxTags                   = 5
)
