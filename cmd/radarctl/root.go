package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/aggregator"
	"github.com/T3chfalcon/offsec-radar/internal/infra/catalog"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

type cliOptions struct {
	baseURL      string
	minStars     int
	language     string
	topics       []string
	updatedAfter string
	jsonOutput   bool
	verbose      bool
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		baseURL: domain.DefaultProviderBaseURL,
	}

	root := &cobra.Command{
		Use:           "radarctl",
		Short:         "Query the security tool directory from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", opts.baseURL, "search provider base URL")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newSearchCmd(&opts),
		newTrendingCmd(&opts),
		newDescribeCmd(&opts),
	)

	return root
}

func (o *cliOptions) newAggregator() (*aggregator.Aggregator, error) {
	logger := zap.NewNop()
	if o.verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	store, err := catalog.NewStore(logger, "")
	if err != nil {
		return nil, err
	}

	client := github.NewClient(github.Config{
		BaseURL: o.baseURL,
		Token:   strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		Logger:  logger,
	})

	return aggregator.New(aggregator.Config{
		Provider: client,
		Catalog:  store,
		Logger:   logger,
	}), nil
}

func (o *cliOptions) filters() (domain.FilterParams, error) {
	filters := domain.FilterParams{
		MinStars: o.minStars,
		Language: o.language,
		Topics:   o.topics,
	}
	if o.updatedAfter != "" {
		updatedAfter, err := time.Parse(time.DateOnly, o.updatedAfter)
		if err != nil {
			return filters, err
		}
		filters.UpdatedAfter = updatedAfter
	}
	return filters, nil
}
