package cli

import (
	"github.com/spf13/cobra"

	"github.com/bnema/layerkit/internal/app"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the layer build HTTP API",
		Long: `Start the HTTP API. POST /layers with {"packages": "...", "layerName": "..."}
builds and publishes a layer; GET /builds lists recorded builds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), configPath, Version)
		},
	}

	addConfigFlag(cmd, &configPath)

	return cmd
}

// newLambdaCmd creates the lambda command.
func newLambdaCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve invocations inside the AWS Lambda runtime",
		Long: `Serve invocations from the Lambda runtime API. The event is either
{"packages": "...", "layerName": "..."} or a proxy event with that JSON in its body.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunLambda(cmd.Context(), configPath, Version)
		},
	}

	addConfigFlag(cmd, &configPath)

	return cmd
}
