package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pinnacle-wm/pinnacle/internal/config"
	"github.com/pinnacle-wm/pinnacle/internal/core"
	"github.com/pinnacle-wm/pinnacle/internal/logger"
	"github.com/pinnacle-wm/pinnacle/internal/rpcserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compositor's policy engine",
	Long: `Run the compositor's core event loop: entity registry, tag model,
focus and bind engines, signal bus, and the local RPC surface other
processes (the config client, pinnacle top, layout generators) talk to.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := logger.SetupFileLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to set up file logging: %v\n", err)
	}

	if flagBackend != "winit" && flagBackend != "udev" {
		return fmt.Errorf("invalid --backend %q: must be winit or udev", flagBackend)
	}
	if flagBackend == "udev" && os.Geteuid() == 0 && !flagAllowRoot {
		return fmt.Errorf("refusing to run the udev backend as root without --allow-root")
	}

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Get()

	state := core.New()
	state.SetBackendName(flagBackend)
	state.AddOutput(defaultOutputName(flagBackend))

	socketPath := cfg.Socket.Path
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	srv, err := rpcserver.Listen(socketPath, newHandler(state, cfg.Backend.FrameThrottle))
	if err != nil {
		return fmt.Errorf("failed to start rpc listener: %w", err)
	}
	defer srv.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	logger.Infof("pinnacle listening on %s (backend=%s)", socketPath, flagBackend)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			logger.Errorf("rpc listener stopped: %v", err)
		}
	}

	return nil
}

// defaultOutputName picks a placeholder output name for the backend that
// would, under winit, be the single nested window output, and under
// udev, the first connector the real DRM backend enumerates — both of
// which are out of this module's scope.
func defaultOutputName(backend string) string {
	if backend == "winit" {
		return "WINIT-1"
	}
	return "DP-1"
}
