package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/jpfielding/mammo.go/pkg/mammo"
	"github.com/spf13/cobra"
)

// NewClassifyCmd classifies a single mammogram from its DICOM metadata
func NewClassifyCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "classify a mammogram (technique, laterality, view position)",
		Long:  "classify a mammogram (technique, laterality, view position)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader
			uri, _ := cmd.Flags().GetString("uri")
			if uri == "" && len(args) > 0 {
				uri = args[0]
			}
			if uri == "" {
				return fmt.Errorf("a file, URL, or - for stdin is required")
			}
			uri = strings.TrimPrefix(uri, "file://")
			source := uri
			switch {
			case uri == "-":
				in = os.Stdin
				source = "stdin"
			case strings.HasPrefix(uri, "http"):
				// TODO make this a param
				cl := &http.Client{
					Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
				}
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
				if err != nil {
					return fmt.Errorf("failed to create request: %v", err)
				}
				resp, err := cl.Do(req)
				if err != nil {
					return fmt.Errorf("failed to download: %v", err)
				}
				verbose, _ := cmd.Flags().GetBool("verbose")
				if verbose {
					reqDump, _ := httputil.DumpRequest(req, true)
					os.Stderr.Write(reqDump)
					resDump, _ := httputil.DumpResponse(resp, false)
					os.Stderr.Write(resDump)
				}
				in = resp.Body
				defer resp.Body.Close()
			default:
				f, err := os.Open(uri)
				if err != nil {
					return fmt.Errorf("failed to open file: %v", err)
				}
				in = f
				defer f.Close()
			}
			dataset, err := mammo.Parse(in)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %v", source, err)
			}
			sfm, _ := cmd.Flags().GetBool("sfm")
			ignoreModality, _ := cmd.Flags().GetBool("ignore-modality")
			if ignoreModality && !mammo.IsMammogram(dataset) {
				slog.WarnContext(ctx, "modality is not MG", "source", source)
			}
			meta, err := mammo.Classify(dataset, mammo.ClassifyOptions{
				FilmBased:      sfm,
				IgnoreModality: ignoreModality,
			})
			if err != nil {
				return fmt.Errorf("failed to classify %s: %v", source, err)
			}
			report := mammo.NewMetadataReport(source, meta)
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				return report.WriteText(os.Stdout)
			default:
				return report.WriteJSON(os.Stdout)
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "DICOM URI to classify (file path, http URL, or - for stdin)")
	pf.StringP("format", "f", "json", "output format (text|json)")
	pf.Bool("sfm", false, "treat input as digitized film-screen mammography")
	pf.Bool("ignore-modality", false, "classify even when Modality is not MG")
	pf.Bool("verbose", false, "dump http request/response headers")
	return cmd
}
