package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pinnacle-wm/pinnacle/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the compositor configuration file",
}

var (
	genLang          string
	genDir           string
	genNonInteractive bool
)

var configGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a starter window-rule/layout config client",
	Long: `Generate a starter external config client project (the process that
drives window rules, layout, and keybinds over pinnacle's RPC surface),
in either Lua or Rust.`,
	RunE: runConfigGen,
}

func init() {
	configCmd.AddCommand(configGenCmd)
	configGenCmd.Flags().StringVar(&genLang, "lang", "lua", "language for the generated config client: lua|rust")
	configGenCmd.Flags().StringVar(&genDir, "dir", "", "directory to generate into (default: the active config directory)")
	configGenCmd.Flags().BoolVar(&genNonInteractive, "non-interactive", false, "skip the interactive wizard and use flag/defaults only")
}

func runConfigGen(cmd *cobra.Command, args []string) error {
	lang := genLang
	dir := genDir

	if !genNonInteractive {
		var err error
		lang, dir, err = askConfigGenOptions(lang, dir)
		if err != nil {
			return err
		}
	}

	if lang != "lua" && lang != "rust" {
		return fmt.Errorf("invalid --lang %q: must be lua or rust", lang)
	}
	if dir == "" {
		dir = filepath.Dir(config.GetConfigPath())
	}

	if !flagForce {
		if _, err := os.Stat(dir); err == nil {
			confirmed, err := confirmOverwrite(dir)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("aborted")
				return nil
			}
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	entry := "init.lua"
	body := defaultLuaConfig
	if lang == "rust" {
		entry = "main.rs"
		body = defaultRustConfig
	}

	path := filepath.Join(dir, entry)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("generated %s config at %s\n", lang, path)
	return nil
}

func askConfigGenOptions(defaultLang, defaultDir string) (lang string, dir string, err error) {
	lang = defaultLang
	dir = defaultDir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Config client language").
				Description("Which language should the generated starter config client use?").
				Options(
					huh.NewOption("Lua", "lua"),
					huh.NewOption("Rust", "rust"),
				).
				Value(&lang),
			huh.NewInput().
				Title("Directory").
				Description("Leave blank to use the default config directory").
				Value(&dir),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("config gen cancelled: %w", err)
	}
	return lang, dir, nil
}

func confirmOverwrite(dir string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite its config entrypoint?", dir)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return confirmed, nil
}

const defaultLuaConfig = `-- Generated by ` + "`pinnacle config gen --lang lua`" + `.
-- This process connects to the running compositor's RPC surface and
-- drives window rules, layout, and keybinds.

local Pinnacle = require("pinnacle")

Pinnacle.setup(function()
	-- add keybinds, layout generators, and window rule handlers here
end)
`

const defaultRustConfig = `// Generated by ` + "`pinnacle config gen --lang rust`" + `.
// This process connects to the running compositor's RPC surface and
// drives window rules, layout, and keybinds.

fn main() {
    pinnacle::connect(|pinnacle| async move {
        // add keybinds, layout generators, and window rule handlers here
    });
}
`
