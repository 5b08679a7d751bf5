package main

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/grounded/internal/calls"
	"github.com/jackzampolin/grounded/internal/config"
	"github.com/jackzampolin/grounded/internal/gemini"
	"github.com/jackzampolin/grounded/internal/tools"
	"github.com/jackzampolin/grounded/version"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the grounded MCP server",
	Long: `Start the grounded MCP server.

By default the server speaks MCP over stdio, for use as a local MCP server:

  grounded serve

With --http it serves the Streamable HTTP transport instead:

  grounded serve --http 127.0.0.1:8080

In HTTP mode, GET /calls returns the recent call log as JSON.

The server exposes three tools: search, ask, and ask_thinking.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Log to stderr: in stdio mode stdout belongs to the MCP transport.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		mgr, err := newConfigManager()
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		if err := cfg.Validate(); err != nil {
			return err
		}

		client, err := gemini.NewClient(cfg.ToClientConfig(logger))
		if err != nil {
			return err
		}

		recorder := calls.NewRecorder(calls.NewStore(cfg.Serve.CallLogSize), logger)
		srv := tools.New(client, recorder, tools.Config{
			SearchMaxTokens:   cfg.Tools.SearchMaxTokens,
			AskMaxTokens:      cfg.Tools.AskMaxTokens,
			ThinkingMaxTokens: cfg.Tools.ThinkingMaxTokens,
			Version:           version.GitRelease,
		}, logger)

		// Hot-reload the client when the config file changes.
		mgr.OnChange(func(next *config.Config) {
			replacement, err := gemini.NewClient(next.ToClientConfig(logger))
			if err != nil {
				logger.Warn("config reload skipped", "error", err)
				return
			}
			srv.SetClient(replacement)
			logger.Info("reloaded gemini client from config",
				"model", replacement.Model())
		})
		mgr.WatchConfig()

		addr := serveHTTP
		if addr == "" && cfg.Serve.Transport == "http" {
			addr = net.JoinHostPort(cfg.Serve.Host, cfg.Serve.Port)
		}

		if addr == "" {
			logger.Info("starting MCP server on stdio", "model", client.Model())
			return srv.RunStdio(ctx)
		}

		logger.Info("starting MCP server over HTTP", "addr", addr, "model", client.Model())
		mux := http.NewServeMux()
		mux.Handle("/", srv.HTTPHandler())
		mux.Handle("/calls", srv.CallLogHandler())
		httpServer := &http.Server{
			Addr:    addr,
			Handler: mux,
		}
		go func() {
			<-ctx.Done()
			httpServer.Close()
		}()
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "Serve MCP over HTTP on this address instead of stdio")
}
