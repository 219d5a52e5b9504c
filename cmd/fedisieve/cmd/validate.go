package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fedisieve/fedisieve/internal/filter"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate filter specification documents",
	Long: `Validate parses and compiles each document, printing a path-qualified
error for every structural problem. Exits non-zero when any document is
invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if _, err := filter.Load(data); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(args))
	}
	return nil
}
