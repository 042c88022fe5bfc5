package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/certificate"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Issue and export a certificate for a passed assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			d.cfg.ExportDir = out
		}
		ctx := cmd.Context()
		svc := d.service(cmd)

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = svc.Snapshot().UserName
		}
		c, err := svc.IssueCertificate(ctx, name)
		if err != nil {
			return fmt.Errorf("issue certificate: %w", err)
		}
		paths, err := svc.ExportCertificate(ctx, c)
		if err != nil {
			return fmt.Errorf("export certificate: %w", err)
		}
		if !svc.Save(ctx) {
			d.logger.Warn("could not save learner name")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, certificate.Text(c))
		for _, p := range paths {
			fmt.Fprintln(out, "Saved", p)
		}
		return nil
	},
}

func init() {
	certificateCmd.Flags().String("name", "", "Name to print on the certificate (defaults to the stored name)")
	certificateCmd.Flags().String("out", "", "Directory to write the certificate files to (overrides PHISHCOURSE_EXPORT_DIR)")
}
