package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/server"
)

const (
	sessionIdleTimeout = 2 * time.Hour
	pruneInterval      = 10 * time.Minute
	shutdownTimeout    = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host quiz sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		secret := []byte(rt.cfg.Server.CookieSecret)
		if len(secret) == 0 {
			rt.logger.Warn("no cookie secret configured, sessions will not survive a restart")
			secret = securecookie.GenerateRandomKey(32)
		}

		srv := server.New(server.Options{
			NewSession:   rt.NewSession,
			CookieSecret: secret,
			SecureCookie: rt.cfg.Server.SecureCookie,
			TickInterval: rt.cfg.Server.TickInterval,
			Logger:       rt.logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			t := time.NewTicker(pruneInterval)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					if n := srv.Registry().Prune(sessionIdleTimeout); n > 0 {
						rt.logger.Info("pruned idle sessions", zap.Int("count", n))
					}
				}
			}
		}()

		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			rt.logger.Info("listening", zap.String("addr", addr), zap.Bool("demo", rt.demo))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		rt.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
