package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fedisieve/fedisieve/internal/core/config"
	"github.com/fedisieve/fedisieve/internal/core/db"
	"github.com/fedisieve/fedisieve/internal/core/store"
	"github.com/fedisieve/fedisieve/internal/filter"
	"github.com/fedisieve/fedisieve/internal/types"
)

var (
	checkTitle     string
	checkBody      string
	checkCommunity string
	checkUser      string
	checkRecord    string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a field-value record against the active specifications",
	Long: `Check assembles the active specification set (built-in first, then the
specification directory, then enabled stored specifications) and prints
the first matching rule or "no match".`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkTitle, "title", "", "post or comment title")
	checkCmd.Flags().StringVar(&checkBody, "body", "", "post or comment body")
	checkCmd.Flags().StringVar(&checkCommunity, "community", "", "community name")
	checkCmd.Flags().StringVar(&checkUser, "user", "", "user name")
	checkCmd.Flags().StringVar(&checkRecord, "record", "", "JSON file with {title, body, communityName, userName}")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	values := types.FieldValues{
		Title:         checkTitle,
		Body:          checkBody,
		CommunityName: checkCommunity,
		UserName:      checkUser,
	}
	if checkRecord != "" {
		data, err := os.ReadFile(checkRecord)
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse record: %w", err)
		}
	}

	engine, err := buildEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result := engine.Apply(values)
	if result == nil {
		fmt.Println("no match")
		return nil
	}

	out, err := json.MarshalIndent(map[string]any{
		"spec":   result.SpecName,
		"rule":   result.RuleName,
		"index":  result.RuleIndex,
		"action": result.Action,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// buildEngine assembles the active set in priority order: built-in,
// specification directory, stored specifications.
func buildEngine(ctx context.Context, cfg *config.Config) (*filter.Engine, error) {
	var specs []*filter.CompiledSpecification

	if cfg.BuiltinEnabled {
		builtin, err := filter.Builtin()
		if err != nil {
			return nil, err
		}
		specs = append(specs, builtin)
	}

	if cfg.SpecDir != "" {
		fromDir, err := filter.LoadDir(cfg.SpecDir)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromDir...)
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		st, err := store.New(database)
		if err != nil {
			return nil, err
		}

		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()

		stored, err := st.LoadActive(queryCtx)
		if err != nil {
			return nil, err
		}
		specs = append(specs, stored...)
	}

	return filter.NewEngine(specs...), nil
}
