package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/petroglyphs/internal/config"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/platform/tui"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeCampaign string
	flagServeConfig   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the petroglyphs SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own session of the campaign. Museum progress
is stored per SSH user, and returning users continue from the furthest
level they reached.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.petroglyphs/host_key

Examples:
  petroglyphs serve                           # Listen on :2222 with auto-generated key
  petroglyphs serve --ssh :23234              # Listen on port 23234
  petroglyphs serve --host-key ./my_host_key  # Use specific host key
  petroglyphs serve --levels ./campaigns --campaign my-trail

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default $PETROGLYPHS_SSH_ADDR or :2222)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeCampaign, "campaign", levels.DefaultCampaign, "Campaign ID played by every session")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	questCfg, err := config.LoadQuest(flagServeConfig)
	if err != nil {
		exitErr("cannot load game config", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	if cfg.Address == "" {
		cfg.Address = runtimeEnv.SSHAddr
	}
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.CampaignID = flagServeCampaign
	cfg.LevelsRoot = flagLevelsDir
	cfg.Quest = questCfg
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("petroglyphs-ssh"))
	if err != nil {
		exitErr("creating server", err)
	}

	fmt.Printf("Starting petroglyphs SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitErr("server", err)
	}
}
