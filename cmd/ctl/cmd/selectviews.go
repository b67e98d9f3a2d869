package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpfielding/mammo.go/pkg/mammo"
	"github.com/spf13/cobra"
)

// NewSelectCmd picks the preferred image for each canonical view from a
// set of DICOM files
func NewSelectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [paths...]",
		Short: "select the preferred image per canonical view (L/R x CC/MLO)",
		Long:  "select the preferred image per canonical view (L/R x CC/MLO)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one file or directory is required")
			}
			paths, err := collectPaths(args)
			if err != nil {
				return err
			}

			config := mammo.DefaultFilterConfig()
			if permissive, _ := cmd.Flags().GetBool("permissive"); permissive {
				config = mammo.PermissiveFilterConfig()
			}
			if filterPath, _ := cmd.Flags().GetString("filter"); filterPath != "" {
				config, err = mammo.LoadFilterConfig(filterPath)
				if err != nil {
					return fmt.Errorf("failed to load filter config: %v", err)
				}
			}
			if common, _ := cmd.Flags().GetBool("common-modality"); common {
				config.RequireCommonTechniqueGroup = true
			}

			order := mammo.OrderDefault
			if pref, _ := cmd.Flags().GetString("preference"); pref != "" {
				order, err = mammo.ParsePreferenceOrder(pref)
				if err != nil {
					return err
				}
			}

			sfm, _ := cmd.Flags().GetBool("sfm")
			ignoreModality, _ := cmd.Flags().GetBool("ignore-modality")
			opts := mammo.ClassifyOptions{FilmBased: sfm, IgnoreModality: ignoreModality}

			records := make([]*mammo.Record, 0, len(paths))
			for _, path := range paths {
				dataset, err := mammo.ReadFile(path)
				if err != nil {
					slog.WarnContext(ctx, "skipping unreadable file", "path", path, "error", err)
					continue
				}
				rec, err := mammo.NewRecord(path, dataset, opts)
				if err != nil {
					slog.WarnContext(ctx, "skipping unclassifiable file", "path", path, "error", err)
					continue
				}
				records = append(records, rec)
			}
			if len(records) == 0 {
				return fmt.Errorf("no classifiable mammograms among %d file(s)", len(paths))
			}

			selection := mammo.PreferredViewsFiltered(records, config, order)
			report := mammo.NewSelectionReport(selection, order)
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				return report.WriteText(os.Stdout)
			case "paths":
				// just the selected files, one per line
				for _, entry := range report.Entries {
					if entry.Selected {
						fmt.Println(entry.Source)
					}
				}
				return nil
			default:
				return report.WriteJSON(os.Stdout)
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("format", "f", "json", "output format (text|json|paths)")
	pf.StringP("preference", "p", "default", "technique preference order (default|tomo-first)")
	pf.String("filter", "", "YAML filter config path")
	pf.Bool("permissive", false, "disable all selection filters")
	pf.Bool("common-modality", false, "require all selected views to share a technique group")
	pf.Bool("sfm", false, "treat inputs as digitized film-screen mammography")
	pf.Bool("ignore-modality", false, "classify even when Modality is not MG")
	return cmd
}

// collectPaths expands directories into their regular files, in walk order
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %v", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %v", arg, err)
		}
	}
	return paths, nil
}
