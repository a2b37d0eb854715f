package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/layerkit/internal/adapters/dto"
	"github.com/bnema/layerkit/internal/domain"
	"github.com/bnema/layerkit/pkg/bytesize"
)

// newBuildCmd creates the build command.
func newBuildCmd() *cobra.Command {
	var (
		configPath string
		layerName  string
		packages   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "build [package-spec...]",
		Short: "Build and publish one layer version",
		Long: `Run the pipeline once: install each package spec in order, zip the
result, upload it to layers/<name>.zip and publish a new layer version.`,
		Example: `  layerkit build --name utils lodash axios@1.6.0
  layerkit build --name utils --packages "lodash axios@1.6.0" --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := strings.TrimSpace(strings.Join(append(strings.Fields(packages), args...), " "))

			svc, err := openServices(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			result := svc.Layers().Build(serviceContext(cmd.Context(), svc), specs, layerName)
			return printBuildResult(cmd, result, jsonOutput)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&layerName, "name", "n", "", "Layer name")
	cmd.Flags().StringVarP(&packages, "packages", "p", "", "Space-separated package specs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the response body as JSON")

	return cmd
}

func printBuildResult(cmd *cobra.Command, result *domain.BuildResult, jsonOutput bool) error {
	w := cmd.OutOrStdout()
	status, body := dto.FromBuildResult(result)

	if jsonOutput {
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return err
		}
		if err := cliWriteLine(w, string(data)); err != nil {
			return err
		}
	} else if result.Succeeded() {
		lines := []string{
			renderSuccess("Layer published"),
			renderMeta("ARN:", result.Version.LayerVersionArn),
			renderMeta("Version:", strconv.FormatInt(result.Version.Version, 10)),
		}
		if result.Archive != nil {
			lines = append(lines, renderMeta("Archive:", fmt.Sprintf("%s (%d files)",
				bytesize.Format(result.Archive.CompressedSize), result.Archive.Files)))
		}
		lines = append(lines, renderMeta("Duration:", result.Duration().Round(time.Millisecond).String()))
		for _, line := range lines {
			if err := cliWriteLine(w, line); err != nil {
				return err
			}
		}
	}

	if result.Failure == nil {
		return nil
	}

	if result.Orphaned() {
		_ = cliWriteLine(cmd.ErrOrStderr(), renderWarning(
			"archive uploaded to "+domain.ObjectKey(result.LayerName)+" but no layer version references it"))
	}

	resp, _ := body.(dto.ErrorResponse)
	return fmt.Errorf("%d %s: %s", status, resp.Error, resp.Details)
}
