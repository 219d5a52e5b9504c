package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fedisieve/fedisieve/internal/core/db"
	"github.com/fedisieve/fedisieve/internal/core/store"
	"github.com/fedisieve/fedisieve/internal/types"
)

var specName string

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Manage stored filter specifications",
}

var specAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Validate and store a specification document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecAdd,
}

var specListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored specifications in priority order",
	RunE:  runSpecList,
}

var specRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a stored specification",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpecRm,
}

var specEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a stored specification",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEnabled(cmd.Context(), args[0], true) },
}

var specDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a stored specification without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setEnabled(cmd.Context(), args[0], false) },
}

func init() {
	rootCmd.AddCommand(specCmd)
	specCmd.AddCommand(specAddCmd, specListCmd, specRmCmd, specEnableCmd, specDisableCmd)
	specAddCmd.Flags().StringVar(&specName, "name", "", "display name (defaults to file name)")
}

// openStore opens the configured database and wraps it in a Store. The
// returned close func must be called when done.
func openStore() (*store.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("--db-url required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	st, err := store.New(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return st, func() { database.Close() }, nil
}

func runSpecAdd(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := specName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	spec, err := st.Add(cmd.Context(), name, data)
	if err != nil {
		return err
	}

	fmt.Printf("added %s (%s) at position %d\n", spec.ID, spec.Name, spec.Position)
	return nil
}

func runSpecList(cmd *cobra.Command, args []string) error {
	st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	specs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	for _, s := range specs {
		state := "enabled"
		if !s.Enabled {
			state = "disabled"
		}
		fmt.Printf("%3d  %s  %-8s  %s\n", s.Position, s.ID, state, s.Name)
	}
	return nil
}

func runSpecRm(cmd *cobra.Command, args []string) error {
	id, err := types.ParseSpecID(args[0])
	if err != nil {
		return fmt.Errorf("invalid specification ID: %w", err)
	}

	st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := st.Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", id)
	return nil
}

func setEnabled(ctx context.Context, rawID string, enabled bool) error {
	id, err := types.ParseSpecID(rawID)
	if err != nil {
		return fmt.Errorf("invalid specification ID: %w", err)
	}

	st, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := st.SetEnabled(ctx, id, enabled); err != nil {
		return err
	}
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Printf("%s %s\n", state, id)
	return nil
}
