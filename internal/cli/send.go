package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/EiSiMo/agentic-letters-skill/internal/clierr"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters"
)

type sendOptions struct {
	pdf     string
	name    string
	street  string
	zip     string
	city    string
	country string
	typ     string
	label   string
}

func newSendCmd(a *app) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSend(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "Path to the PDF file")
	cmd.Flags().StringVar(&opts.name, "name", "", "Recipient full name")
	cmd.Flags().StringVar(&opts.street, "street", "", "Recipient street + number")
	cmd.Flags().StringVar(&opts.zip, "zip", "", "Recipient postal code (5-digit German PLZ)")
	cmd.Flags().StringVar(&opts.city, "city", "", "Recipient city")
	cmd.Flags().StringVar(&opts.country, "country", "DE", "Recipient country code")
	cmd.Flags().StringVar(&opts.typ, "type", "standard", "Letter type")
	cmd.Flags().StringVar(&opts.label, "label", "", "Optional label for your reference")

	for _, required := range []string{"pdf", "name", "street", "zip", "city"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func (a *app) runSend(ctx context.Context, opts sendOptions) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	pdfBytes, err := readPDF(opts.pdf)
	if err != nil {
		return err
	}

	raw, err := client.Send(ctx, letters.SendRequest{
		PDF:      pdfBytes,
		Filename: filepath.Base(opts.pdf),
		Recipient: letters.Recipient{
			Name:    opts.name,
			Street:  opts.street,
			Zip:     opts.zip,
			City:    opts.city,
			Country: opts.country,
		},
		Type:  opts.typ,
		Label: opts.label,
	})
	if err != nil {
		return err
	}

	return a.printJSON(raw)
}

// readPDF is a presence-and-readability check only. Whether the bytes are a
// valid PDF of acceptable size is the server's call.
func readPDF(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierr.Localf("File not found: %s", path)
	}
	if err != nil {
		return nil, clierr.Localf("Cannot read file: %s", path).WithDetail(err.Error()).WithCause(err)
	}
	if !info.Mode().IsRegular() {
		return nil, clierr.Localf("Not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrPermission) {
		return nil, clierr.Localf("Permission denied: %s", path)
	}
	if err != nil {
		return nil, clierr.Localf("Cannot read file: %s", path).WithDetail(err.Error()).WithCause(err)
	}
	return data, nil
}
