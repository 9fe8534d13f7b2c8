// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"refbook/internal/config"
	"refbook/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd manages refbook configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage refbook configuration",
	Long: `Manage refbook configuration.

Configuration is stored in:
  - Linux: ~/.config/refbook/config.cue
  - macOS: ~/Library/Application Support/refbook/config.cue
  - Windows: %APPDATA%\refbook\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		printIssueCard(issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := AnchorStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.ConfigFilePath()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("search_paths"))
	if len(cfg.SearchPaths) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.SearchPaths {
			fmt.Printf("  - %s\n", valueStyle.Render(p))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  theme: %s\n", valueStyle.Render(string(cfg.UI.Theme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Printf("  width: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.UI.Width)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("lint"))
	if len(cfg.Lint.DisabledRules) == 0 {
		fmt.Printf("  disabled_rules: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Printf("  disabled_rules: %s\n", valueStyle.Render(strings.Join(cfg.Lint.DisabledRules, ", ")))
	}
	fmt.Printf("  strict: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Lint.Strict)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("serve"))
	fmt.Printf("  host: %s\n", valueStyle.Render(cfg.Serve.Host))
	fmt.Printf("  port: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Serve.Port)))

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	sheetsDir, err := config.SheetsDir()
	if err == nil {
		fmt.Printf("Sheets directory: %s\n", sheetsDir)
	}

	return nil
}

func initConfigFile() error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if fileExistsCheck(cfgPath) {
		return fmt.Errorf("config file already exists at %s", cfgPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(defaultConfigCUE), 0o644); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)

	// Also create the user sheets directory
	sheetsDir, err := config.SheetsDir()
	if err == nil {
		if mkdirErr := os.MkdirAll(sheetsDir, 0o755); mkdirErr != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("failed to create sheets directory %s: %v", sheetsDir, mkdirErr))
		} else {
			fmt.Printf("%s Created sheets directory at %s\n", SuccessStyle.Render("✓"), sheetsDir)
		}
	}

	return nil
}

// defaultConfigCUE is the config file scaffold written by 'refbook config init'.
const defaultConfigCUE = `// refbook configuration
//
// search_paths: extra directories scanned for *.sheet.md files
// ui.theme: auto | dark | light | notty

search_paths: []

ui: {
	theme:   "auto"
	verbose: false
	width:   0
}

lint: {
	disabled_rules: []
	strict: false
}

serve: {
	host: "127.0.0.1"
	port: 0
}
`

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
