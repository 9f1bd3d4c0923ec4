// ABOUTME: Serve command running the notes web app.
// ABOUTME: Wires logging, the session store and the HTTP server until interrupted.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/harper/notes/internal/logging"
	"github.com/harper/notes/internal/session"
	"github.com/harper/notes/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long:  `Serve the notes web app until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		sessions, err := session.Open(session.Options{
			Dir:    cfg.Session.Dir,
			TTL:    cfg.Session.TTL,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer func() {
			if err := sessions.Close(); err != nil {
				logger.Warn("failed to close session store", zap.Error(err))
			}
		}()

		gin.SetMode(gin.ReleaseMode)
		srv, err := web.New(web.Options{
			DB:            dbConn,
			Sessions:      sessions,
			Logger:        logger,
			CookieName:    cfg.Session.CookieName,
			SecureCookies: cfg.Session.SecureCookies,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("notes server starting",
			zap.String("addr", cfg.Addr),
			zap.String("db", cfg.DBPath),
			zap.String("version", version))
		return srv.Run(ctx, cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
