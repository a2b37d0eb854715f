// Package lambdaregistry implements the LayerRegistry interface on AWS Lambda.
package lambdaregistry

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/domain"
)

// createdDateLayout is the timestamp format Lambda uses for CreatedDate.
const createdDateLayout = "2006-01-02T15:04:05.000-0700"

// PublishLayerVersionAPI is the subset of the Lambda client used by the registry.
type PublishLayerVersionAPI interface {
	PublishLayerVersion(ctx context.Context, params *lambda.PublishLayerVersionInput, optFns ...func(*lambda.Options)) (*lambda.PublishLayerVersionOutput, error)
}

// Registry implements the LayerRegistry interface.
type Registry struct {
	client PublishLayerVersionAPI
}

// NewRegistry creates a Lambda layer registry.
func NewRegistry(client PublishLayerVersionAPI) *Registry {
	return &Registry{client: client}
}

// NewClient builds a Lambda client from an AWS config, optionally pointed at
// a custom endpoint.
func NewClient(cfg aws.Config, endpoint string) *lambda.Client {
	return lambda.NewFromConfig(cfg, func(o *lambda.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// Publish creates a new version of the named layer referencing the stored
// archive.
func (r *Registry) Publish(ctx context.Context, req domain.PublishRequest) (*domain.LayerVersion, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "lambda",
		"layer_name":          req.LayerName,
	})
	log := zerowrap.FromCtx(ctx)

	out, err := r.client.PublishLayerVersion(ctx, &lambda.PublishLayerVersionInput{
		LayerName:   aws.String(req.LayerName),
		Description: aws.String(req.Description),
		Content: &types.LayerVersionContentInput{
			S3Bucket: aws.String(req.Content.Bucket),
			S3Key:    aws.String(req.Content.Key),
		},
		CompatibleRuntimes:      toRuntimes(req.CompatibleRuntimes),
		CompatibleArchitectures: toArchitectures(req.CompatibleArchitectures),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: publish %s: %w", domain.ErrRegistrationFailed, req.LayerName, err)
	}

	version := &domain.LayerVersion{
		LayerName:               req.LayerName,
		Description:             req.Description,
		Content:                 req.Content,
		CompatibleRuntimes:      req.CompatibleRuntimes,
		CompatibleArchitectures: req.CompatibleArchitectures,
		LayerArn:                aws.ToString(out.LayerArn),
		LayerVersionArn:         aws.ToString(out.LayerVersionArn),
		Version:                 out.Version,
	}
	if out.Content != nil {
		version.CodeSize = out.Content.CodeSize
	}
	if created := aws.ToString(out.CreatedDate); created != "" {
		if ts, err := time.Parse(createdDateLayout, created); err == nil {
			version.CreatedAt = ts
		} else {
			log.Debug().Str("created_date", created).Msg("unrecognized created date")
		}
	}

	if version.LayerVersionArn == "" || version.Version < 1 {
		return nil, fmt.Errorf("%w: publish %s: registry returned no version", domain.ErrRegistrationFailed, req.LayerName)
	}

	log.Debug().
		Str("layer_version_arn", version.LayerVersionArn).
		Int64("version", version.Version).
		Msg("layer version created")

	return version, nil
}

func toRuntimes(values []string) []types.Runtime {
	out := make([]types.Runtime, 0, len(values))
	for _, v := range values {
		out = append(out, types.Runtime(v))
	}
	return out
}

func toArchitectures(values []string) []types.Architecture {
	out := make([]types.Architecture, 0, len(values))
	for _, v := range values {
		out = append(out, types.Architecture(v))
	}
	return out
}
