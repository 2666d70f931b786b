package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"contactcard/internal/qr"
	"contactcard/internal/vcard"
	"contactcard/pkg/card"
)

var inspectPNG string

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the parsed fields and vCard for a single record",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringVar(&inspectPNG, "png", "", "Also write the QR code image to this path")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	rec, err := card.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	for _, f := range rec.Fields() {
		fmt.Fprintf(w, "%s:\t%s\n", f.Key, f.Value)
	}
	w.Flush()
	fmt.Fprintln(out)

	vc := vcard.Build(rec)
	fmt.Fprintln(out, vc)

	if inspectPNG == "" {
		return nil
	}

	_, cfg, err := loadProject()
	if err != nil {
		return err
	}
	level, err := qr.ParseLevel(cfg.QR.Level)
	if err != nil {
		return err
	}
	enc := qr.Encoder{Level: level, BoxSize: cfg.QR.BoxSize, Border: cfg.QR.BorderValue()}

	data, err := enc.PNG(vc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(inspectPNG, data, 0o644); err != nil {
		return fmt.Errorf("write qr png: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote QR code to %s (%s)\n", inspectPNG, humanize.Bytes(uint64(len(data))))
	return nil
}
