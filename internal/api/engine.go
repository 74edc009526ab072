package api

import (
	"log/slog"

	"soundguard/internal/artists"
	"soundguard/internal/config"
	"soundguard/internal/recognition"
	"soundguard/internal/services"
	"soundguard/internal/verification"
)

// EngineOption customizes the engine built by NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	service    recognition.Service
	clientOpts []recognition.Option
}

// WithRecognitionService replaces the HTTP recognition service.
func WithRecognitionService(service recognition.Service) EngineOption {
	return func(o *engineOptions) {
		o.service = service
	}
}

// WithClientOptions appends options to the recognition client.
func WithClientOptions(opts ...recognition.Option) EngineOption {
	return func(o *engineOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// NewEngine wires recognition, the artist directory and policy constants
// from configuration.
func NewEngine(cfg *config.Config, directory artists.Directory, logger *slog.Logger, opts ...EngineOption) (*verification.Engine, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "build", "configuration is required", nil)
	}
	if directory == nil {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "build", "artist directory is required", nil)
	}
	var options engineOptions
	for _, opt := range opts {
		opt(&options)
	}
	service := options.service
	if service == nil {
		if err := cfg.RequireRecognitionToken(); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "engine", "build", "recognition token missing", err)
		}
		service = recognition.NewAudDService(cfg.Recognition.APIToken, cfg.Recognition.BaseURL, cfg.RecognitionTimeout())
	}
	clientOpts := append([]recognition.Option{
		recognition.WithMaxAttempts(cfg.Recognition.MaxAttempts),
		recognition.WithRetryDelay(cfg.RetryDelay()),
		recognition.WithTempDir(cfg.Paths.TempDir),
		recognition.WithLogger(logger),
	}, options.clientOpts...)
	client := recognition.NewClient(service, clientOpts...)
	return verification.NewEngine(client, artists.NewFinder(directory, logger), verification.PolicyFromConfig(cfg), logger), nil
}
