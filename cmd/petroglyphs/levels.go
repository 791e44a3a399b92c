package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or validate campaign files",
	Long: `Work with campaign files. Campaigns are YAML (.yaml, .yml) or TOML
(.toml) files holding an ordered list of levels with their platforms,
fragments and museum entries.`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available campaigns",
	Long: `Shows the built-in campaigns and the campaigns found in --levels.
A campaign in --levels replaces a built-in campaign with the same ID.`,
	Args: cobra.NoArgs,
	Run:  runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate campaign files",
	Long: `Parses and validates each campaign file. Exits with status 1 if any
file is invalid.

Examples:
  petroglyphs levels validate ./campaigns/my-trail.yaml
  petroglyphs levels validate ./campaigns/*.toml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLevelsValidate,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	campaigns, err := levels.Available(flagLevelsDir)
	if err != nil {
		exitErr("cannot list campaigns", err)
	}

	if len(campaigns) == 0 {
		fmt.Println("No campaigns available.")
		return
	}

	fmt.Println("Available campaigns:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range campaigns {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "ID", "Levels", "Source", "Name")
	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "--", "------", "------", "----")

	for _, c := range campaigns {
		source := "built-in"
		if !c.Builtin() {
			source = "file"
		}
		fmt.Printf("  %-*s  %-6d  %-8s  %s\n", maxIDLen, c.ID, c.Count(), source, c.Name)
	}

	if flagLevelsDir != "" {
		_, failures, err := levels.NewLoader(flagLevelsDir).Scan()
		if err == nil && len(failures) > 0 {
			fmt.Println()
			for _, f := range failures {
				fmt.Fprintf(os.Stderr, "  skipped %s: %v\n", f.Path, f.Err)
			}
		}
	}

	fmt.Println()
	fmt.Println("Run 'petroglyphs play --campaign <id>' to play a campaign.")
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	loader := levels.NewLoader("")
	failed := 0

	for _, path := range args {
		c, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("OK    %s (%s, %d levels)\n", path, c.ID, c.Count())
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d files invalid\n", failed, len(args))
		os.Exit(1)
	}
}
