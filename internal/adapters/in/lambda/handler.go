// Package lambda implements the AWS Lambda invocation adapter.
package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/adapters/dto"
	"github.com/bnema/layerkit/internal/boundaries/in"
)

// Event is the invocation payload. Direct invokes carry the request fields
// at the top level; proxy integrations carry them JSON-encoded in Body.
type Event struct {
	Packages  string `json:"packages"`
	LayerName string `json:"layerName"`
	Body      string `json:"body,omitempty"`
}

// Handler adapts Lambda invocations to the layer service.
type Handler struct {
	layerSvc in.LayerService
	log      zerowrap.Logger
}

// NewHandler creates a new Lambda handler.
func NewHandler(layerSvc in.LayerService, log zerowrap.Logger) *Handler {
	return &Handler{layerSvc: layerSvc, log: log}
}

// Handle runs one build. Failures are reported in the response, never as
// an invocation error.
func (h *Handler) Handle(ctx context.Context, event Event) (events.APIGatewayProxyResponse, error) {
	fields := map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "lambda",
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	ctx = zerowrap.CtxWithFields(zerowrap.WithCtx(ctx, h.log), fields)
	log := zerowrap.FromCtx(ctx)

	req := dto.LayerRequest{Packages: event.Packages, LayerName: event.LayerName}
	if event.Body != "" {
		if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
			log.Warn().Err(err).Msg("invalid request body")
			return respond(http.StatusBadRequest, dto.ErrorResponse{
				Error:   http.StatusText(http.StatusBadRequest),
				Details: "invalid JSON body: " + err.Error(),
			}), nil
		}
	}

	result := h.layerSvc.Build(ctx, req.Packages, req.LayerName)
	status, body := dto.FromBuildResult(result)
	return respond(status, body), nil
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Internal Server Error","details":"failed to encode response"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
