package cli

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bnema/layerkit/internal/adapters/dto"
	"github.com/bnema/layerkit/internal/boundaries/in"
	"github.com/bnema/layerkit/internal/domain"
	"github.com/bnema/layerkit/pkg/bytesize"
)

// newHistoryCmd creates the history command.
func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		filter     domain.HistoryFilter
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Long: `List builds from the local build history, newest first.

Use --orphans to list builds whose archive reached S3 but whose layer version
was never published; those objects need manual reconciliation.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			records, err := listBuilds(serviceContext(cmd.Context(), svc), svc.History(), filter)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(dto.FromBuildRecords(records), "", "  ")
				if err != nil {
					return err
				}
				return cliWriteLine(w, string(data))
			}

			if len(records) == 0 {
				return cliWriteLine(w, renderEmpty("No builds recorded."))
			}

			title := "Builds"
			if filter.OrphanedOnly {
				title = "Orphaned archives"
			}
			if err := cliWriteLine(w, renderTitle(title)); err != nil {
				return err
			}
			return cliWriteLine(w, renderTable(historyHeaders, historyRows(records)))
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&filter.LayerName, "layer", "l", "", "Only builds of this layer")
	cmd.Flags().BoolVar(&filter.OrphanedOnly, "orphans", false, "Only builds that left an unregistered archive")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "Maximum number of builds")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print builds as JSON")

	return cmd
}

var historyHeaders = []string{"STARTED", "LAYER", "STATUS", "VERSION", "SIZE", "PACKAGES"}

func historyRows(records []domain.BuildRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := r.Status
		switch {
		case r.Orphaned:
			status = "orphaned (" + r.Key + ")"
		case r.FailureKind != "":
			status = string(r.FailureKind)
		}

		version := "-"
		if r.Version > 0 {
			version = strconv.FormatInt(r.Version, 10)
		}

		size := "-"
		if r.ArchiveSize > 0 {
			size = bytesize.Format(r.ArchiveSize)
		}

		rows = append(rows, []string{
			humanize.Time(r.StartedAt),
			r.LayerName,
			status,
			version,
			size,
			strings.Join(r.Packages, " "),
		})
	}
	return rows
}

func listBuilds(ctx context.Context, history in.HistoryService, filter domain.HistoryFilter) ([]domain.BuildRecord, error) {
	if filter.OrphanedOnly && filter.LayerName == "" {
		return history.Orphans(ctx, filter.Limit)
	}
	return history.List(ctx, filter)
}
