package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

func newSearchCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search for security tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			filters, err := opts.filters()
			if err != nil {
				return err
			}
			if filters.MinStars == 0 {
				filters.MinStars = domain.DefaultSearchMinStars
			}

			agg, err := opts.newAggregator()
			if err != nil {
				return err
			}
			tools, err := agg.Search(cmd.Context(), query, filters)
			if err != nil {
				return err
			}
			return printTools(tools, false, opts.jsonOutput)
		},
	}

	cmd.Flags().IntVar(&opts.minStars, "min-stars", 0, "minimum stargazer count")
	cmd.Flags().StringVar(&opts.language, "language", "", "restrict to one language")
	cmd.Flags().StringSliceVar(&opts.topics, "topic", nil, "topic filter (repeatable)")
	cmd.Flags().StringVar(&opts.updatedAfter, "updated-after", "", "only repositories pushed on or after this date (YYYY-MM-DD)")

	return cmd
}

func newTrendingCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show trending security tools (falls back to the curated dataset)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agg, err := opts.newAggregator()
			if err != nil {
				return err
			}
			result := agg.Trending(cmd.Context())
			return printTools(result.Tools, result.Fallback, opts.jsonOutput)
		},
	}
}

func newDescribeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <owner>/<repo>",
		Short: "Show one tool record by repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := splitRepoArg(args[0])
			if err != nil {
				return err
			}

			agg, err := opts.newAggregator()
			if err != nil {
				return err
			}
			tool, err := agg.Describe(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(tool)
			}
			printTool(tool)
			return nil
		},
	}
}

func splitRepoArg(arg string) (string, string, error) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '/' {
			owner, repo := arg[:i], arg[i+1:]
			if owner == "" || repo == "" {
				break
			}
			return owner, repo, nil
		}
	}
	return "", "", fmt.Errorf("expected <owner>/<repo>, got %q", arg)
}
