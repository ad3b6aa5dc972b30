package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var (
	semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	changeTypes = map[string]bool{
		"Added":      true,
		"Changed":    true,
		"Deprecated": true,
		"Removed":    true,
		"Fixed":      true,
		"Security":   true,
	}
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions in the changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		changelog, err := load(cmd)
		if err != nil {
			return err
		}

		for _, entry := range changelog.Entries {
			if entry.Date != "" {
				fmt.Printf("%s (%s)\n", entry.Version, entry.Date)
			} else {
				fmt.Println(entry.Version)
			}
		}
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print a version's changelog entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, _ := cmd.Flags().GetString("version")

		changelog, err := load(cmd)
		if err != nil {
			return err
		}

		entry := changelog.Entry(version)
		if entry == nil {
			return fmt.Errorf("version %s not found in changelog", version)
		}

		if entry.Date != "" {
			fmt.Printf("## [%s] - %s\n\n", entry.Version, entry.Date)
		} else {
			fmt.Printf("## [%s]\n\n", entry.Version)
		}
		fmt.Println(entry.Body)
		if url, ok := changelog.Links[entry.Version]; ok {
			fmt.Printf("\n[%s]: %s\n", entry.Version, url)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the changelog follows Keep a Changelog conventions",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		problems := check(source)
		if len(problems) == 0 {
			fmt.Println("Changelog is valid")
			return nil
		}

		for _, p := range problems {
			fmt.Println(" -", p)
		}
		return fmt.Errorf("found %d issue(s)", len(problems))
	},
}

func load(cmd *cobra.Command) (*Changelog, error) {
	file, _ := cmd.Flags().GetString("file")
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return parseChangelog(source)
}

// check reports Keep a Changelog convention violations
func check(source []byte) []string {
	var problems []string

	changelog, err := parseChangelog(source)
	if err != nil {
		return []string{fmt.Sprintf("parse failed: %v", err)}
	}

	if !strings.HasPrefix(strings.TrimSpace(string(source)), "# ") {
		problems = append(problems, "missing changelog title")
	}

	hasUnreleased := false
	for _, entry := range changelog.Entries {
		if strings.EqualFold(entry.Version, "Unreleased") {
			hasUnreleased = true
			continue
		}

		if !semverRegex.MatchString(strings.TrimPrefix(entry.Version, "v")) {
			problems = append(problems, fmt.Sprintf("version %q is not semantic", entry.Version))
		}
		if entry.Date == "" {
			problems = append(problems, fmt.Sprintf("version %q is missing a release date", entry.Version))
		} else if !isoDateRegex.MatchString(entry.Date) {
			problems = append(problems, fmt.Sprintf("date %q is not ISO 8601", entry.Date))
		}
		if _, ok := changelog.Links[entry.Version]; !ok {
			problems = append(problems, fmt.Sprintf("missing link definition for [%s]", entry.Version))
		}
	}

	if !hasUnreleased {
		problems = append(problems, "missing [Unreleased] section")
	}

	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "### ") {
			if changeType := strings.TrimPrefix(trimmed, "### "); !changeTypes[changeType] {
				problems = append(problems, fmt.Sprintf("invalid change type %q", changeType))
			}
		}
	}

	return problems
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, extractCmd, checkCmd} {
		cmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	}
	extractCmd.Flags().StringP("version", "v", "", "Version to extract (with or without 'v' prefix)")
	_ = extractCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(checkCmd)
}
