// Package cli wires the cobra command tree: send, status, list, credits.
// Commands print exactly one JSON document to stdout on success; every
// failure renders as a tagged block on stderr and nothing on stdout.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/EiSiMo/agentic-letters-skill/internal/clierr"
	"github.com/EiSiMo/agentic-letters-skill/internal/config"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters/httpapi"
	"github.com/EiSiMo/agentic-letters-skill/internal/logger"
)

// Exit codes. Usage errors mirror the common argparse convention.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// app carries the wiring every command needs. The client constructor and
// the secrets file location are injectable for tests.
type app struct {
	cfg         *config.Config
	stdout      io.Writer
	secretsFile string
	newClient   func(httpapi.Config) letters.Client
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, clierr.From(err).Render())
		return ExitFailure
	}
	logger.InitDefault(cfg.Log)

	a := &app{
		cfg:         cfg,
		stdout:      stdout,
		secretsFile: config.SecretsFile(),
		newClient: func(apiCfg httpapi.Config) letters.Client {
			return httpapi.NewClient(apiCfg, nil)
		},
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx := logger.NewContext(context.Background(), slog.Default())
	if err := root.ExecuteContext(ctx); err != nil {
		var tagged *clierr.Error
		if errors.As(err, &tagged) {
			fmt.Fprintln(stderr, tagged.Render())
			return ExitFailure
		}
		// Anything untagged came from cobra itself: bad flags, unknown
		// subcommand, wrong arg count.
		fmt.Fprintln(stderr, clierr.Local(err.Error()).Render())
		return ExitUsage
	}
	return ExitOK
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "agentic-letters",
		Short: "Send physical letters via the AgenticLetters API",
		Long: "agentic-letters uploads a PDF plus a German postal address to the\n" +
			"AgenticLetters API, checks delivery status, and reports credits.\n" +
			"Successful calls print the server's JSON response to stdout; every\n" +
			"failure is tagged [local], [server] or [network] on stderr.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSendCmd(a),
		newStatusCmd(a),
		newListCmd(a),
		newCreditsCmd(a),
	)
	return root
}

// client resolves the API key and builds a letters client. Key resolution
// happens here so every subcommand fails locally, before any network I/O,
// when no key is configured.
func (a *app) client() (letters.Client, error) {
	key, err := config.LoadAPIKey(a.secretsFile)
	if err != nil {
		return nil, err
	}

	apiCfg := a.cfg.API
	apiCfg.APIKey = key
	return a.newClient(apiCfg), nil
}

// printJSON writes the server's body to stdout with two-space indentation.
// Indenting never re-marshals, so keys and values stay exactly as the
// server sent them.
func (a *app) printJSON(raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not JSON; pass it through untouched.
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	if _, err := a.stdout.Write(buf.Bytes()); err != nil {
		return clierr.Local("Cannot write to stdout").WithCause(err)
	}
	return nil
}
