package cmd

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/config"
	"github.com/brpalette/brpalette/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Long: `Serve the palette API on a local address. Every endpoint except /health and
/metrics requires the bearer token printed on startup, which is stored in the
config directory and reused across runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = globalSettings.Server.Listen
		}

		svc, err := openServices(true, settingsTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		ln, err := net.Listen("tcp", listen)
		if err != nil {
			return fmt.Errorf("could not bind to %s: %w", listen, err)
		}

		token := ensureAuthToken(config.GetTokenPath())
		handler := newServerHandler(NewAPIHandler(svc.ctrl, svc.metrics, globalSettings.General.ShareBaseURL), token)

		out := cmd.OutOrStdout()
		printSuccess(out, "Listening on http://%s", ln.Addr())
		printInfo(out, "Token: %s", token)
		utils.Debug("HTTP server listening on %s", ln.Addr())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- startHTTPServer(ln, handler) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			_ = ln.Close()
			<-errCh
			printInfo(out, "Shutting down.")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default from settings)")
}

