package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pinnacle-wm/pinnacle/internal/config"
	"github.com/pinnacle-wm/pinnacle/internal/dashboard"
	"github.com/pinnacle-wm/pinnacle/internal/rpcserver"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show a live status dashboard for the running compositor",
	RunE:  runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := rpcserver.Dial(config.Get().Socket.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to pinnacle: %w (is it running?)", err)
	}
	defer client.Close()

	p := tea.NewProgram(dashboard.New(client))
	_, err = p.Run()
	return err
}
