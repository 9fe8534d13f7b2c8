// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"refbook/internal/config"
	"refbook/internal/issue"
	"refbook/internal/render"
	"refbook/internal/sshserver"

	"github.com/spf13/cobra"
)

var (
	serveHost    string
	servePort    int
	serveHostKey string

	// serveCmd exposes the catalog over SSH
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over SSH",
		Long: `Serve the catalog over SSH.

Connecting without a command prints the topic index; passing a topic id
as the SSH command prints that topic:

  ssh -p <port> <host>            # topic index
  ssh -p <port> <host> git-log    # one topic

The server is read-only and binds to 127.0.0.1 by default.`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to bind (default from config, 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", -1, "port to listen on (0 = auto-select, default from config)")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "SSH host key file (ephemeral key when unset)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	cfg := config.Get()

	// SSH sessions have no reliable terminal detection on our side, so a
	// fixed style beats auto-detection unless the user pinned one.
	theme := cfg.UI.Theme
	if theme == config.ThemeAuto {
		theme = config.ThemeDark
	}
	renderer, err := render.New(render.Options{Theme: theme, Width: cfg.UI.Width})
	if err != nil {
		return err
	}

	srvCfg := sshserver.DefaultConfig()
	srvCfg.Host = cfg.Serve.Host
	srvCfg.Port = cfg.Serve.Port
	if serveHost != "" {
		srvCfg.Host = serveHost
	}
	if servePort >= 0 {
		srvCfg.Port = servePort
	}
	srvCfg.HostKeyPath = serveHostKey

	srv := sshserver.New(srvCfg, cat, renderer)
	if err := srv.Start(cmd.Context()); err != nil {
		printIssueCard(issue.ServeStartFailedId)
		return err
	}

	fmt.Printf("%s Serving %d topics on %s\n",
		SuccessStyle.Render("✓"), cat.Len(), AnchorStyle.Render("ssh://"+srv.Address()))
	fmt.Println(SubtitleStyle.Render("Press ctrl+c to stop"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-cmd.Context().Done():
	case err := <-srv.Err():
		if err != nil {
			_ = srv.Stop()
			return err
		}
	}

	return srv.Stop()
}
