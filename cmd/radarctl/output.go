package main

import (
	"encoding/json"
	"fmt"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

func writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printTools(tools []domain.ToolRecord, fallback bool, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(domain.SearchResult{Tools: tools, Fallback: fallback})
	}
	if fallback {
		fmt.Println("provider unavailable, showing curated dataset")
	}
	fmt.Printf("tools=%d\n", len(tools))
	for _, tool := range tools {
		marks := ""
		if tool.Trending {
			marks += " [trending]"
		}
		if tool.Verified {
			marks += " [verified]"
		}
		fmt.Printf("%-28s %-22s ★%-7d %-10s %s%s\n",
			tool.Name, string(tool.Category), tool.Stars, string(tool.Maturity), tool.Language, marks)
	}
	return nil
}

func printTool(tool domain.ToolRecord) {
	fmt.Printf("%s by %s\n", tool.Name, tool.Author)
	fmt.Printf("  %s\n", tool.Description)
	fmt.Printf("  category=%s maturity=%s rating=%.1f\n", tool.Category, tool.Maturity, tool.Rating)
	fmt.Printf("  stars=%d forks=%d issues=%d language=%s license=%s size=%s\n",
		tool.Stars, tool.Forks, tool.OpenIssues, tool.Language, tool.License, tool.SizeFormatted)
	if len(tool.Tags) > 0 {
		fmt.Printf("  tags=%v\n", tool.Tags)
	}
	fmt.Printf("  %s\n", tool.RepositoryURL)
}
