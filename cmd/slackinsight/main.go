// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command slackinsight runs an MCP server that exposes Slack workspace data
// and bilingual (English/Japanese) conversation analysis tools to AI agents.
package main

// In this file: command line parsing and server startup.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"
	"github.com/rusq/tracer"

	"github.com/rusq/slackinsight/internal/cache"
	"github.com/rusq/slackinsight/internal/client"
	"github.com/rusq/slackinsight/internal/config"
	"github.com/rusq/slackinsight/internal/mcp"
)

const envSlackToken = "SLACK_TOKEN"

const (
	defListenAddr    = "127.0.0.1:8483"
	defCacheLifetime = 4 * time.Hour
	defUserCacheFile = "users.json"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	token      string
	transport  string
	listenAddr string
	configFile string
	cacheDir   string
	cacheAge   time.Duration

	traceFile    string
	printVersion bool
	verbose      bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}
	initLog(p)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, p); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// initLog configures slog.  Logs go to stderr so that the stdio transport's
// JSON-RPC stream on stdout stays clean.
func initLog(p params) {
	level := slog.LevelInfo
	if p.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// run starts the MCP server with the configured transport.
func run(ctx context.Context, p params) error {
	if p.traceFile != "" {
		slog.InfoContext(ctx, "enabling trace", "file", p.traceFile)
		trc := tracer.New(p.traceFile)
		if err := trc.Start(); err != nil {
			return err
		}
		defer func() {
			if err := trc.End(); err != nil {
				slog.Error("failed to write the trace file", "error", err)
			}
		}()
	}

	cfg := config.Default()
	if p.configFile != "" {
		var err error
		cfg, err = config.Load(p.configFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		slog.InfoContext(ctx, "configuration loaded", "file", p.configFile)
	}

	cl := client.NewFromToken(p.token, client.WithLimits(cfg.Limits))
	resp, err := cl.AuthTest(ctx)
	if err != nil {
		return fmt.Errorf("slack authentication failed: %w", err)
	}
	slog.InfoContext(ctx, "authenticated", "team", resp.Team, "user", resp.User)

	opts := []mcp.Option{
		mcp.WithLogger(slog.Default()),
		mcp.WithSentimentConfig(cfg.Sentiment),
		mcp.WithActionConfig(cfg.Action),
	}
	if p.cacheDir != "" && p.cacheAge > 0 {
		opts = append(opts, mcp.WithUserCache(cache.NewUserCache(p.cacheDir, defUserCacheFile, p.cacheAge)))
	}
	srv := mcp.New(cl, opts...)

	switch mcp.Transport(p.transport) {
	case mcp.TransportStdio:
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, p.listenAddr)
	default:
		return fmt.Errorf("unknown transport %q", p.transport)
	}
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			flag.CommandLine.Output(),
			"Slack Insight MCP server, %s\n"+
				"Exposes Slack workspace data and bilingual conversation analysis\n"+
				"(sentiment, decisions, action items) as MCP tools.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.token, "t", osenv.Secret(envSlackToken, ""), "Specify slack `API_token`, (environment: "+envSlackToken+")")
	fs.StringVar(&p.transport, "transport", string(mcp.TransportStdio), "MCP `transport`: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", defListenAddr, "listen `address` for the http transport")
	fs.StringVar(&p.configFile, "config", "", "optional TOML configuration `file` overriding analysis lexicons and API limits")
	fs.StringVar(&p.cacheDir, "cache-dir", osenv.Value("CACHE_DIR", defCacheDir()), "user cache `directory`, set to \"\" to disable the cache")
	fs.DurationVar(&p.cacheAge, "user-cache-age", defCacheLifetime, "user cache lifetime `duration`. Set this to 0 to disable cache")

	fs.StringVar(&p.traceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `file` (optional)")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	os.Unsetenv(envSlackToken)

	if err := fs.Parse(args); err != nil {
		return p, err
	}

	return p, p.validate()
}

// defCacheDir returns the default user cache directory.
func defCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "slackinsight")
}

func (p *params) validate() error {
	if p.printVersion {
		return nil
	}
	if p.token == "" {
		return errors.New("slack token not set: use -t or the " + envSlackToken + " environment variable")
	}
	switch mcp.Transport(p.transport) {
	case mcp.TransportStdio, mcp.TransportHTTP:
	default:
		return fmt.Errorf("invalid transport %q", p.transport)
	}
	return nil
}
