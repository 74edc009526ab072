package config

const (
	defaultStateDir                 = "~/.local/share/soundguard"
	defaultLogDir                   = "~/.local/share/soundguard/logs"
	defaultAPIBind                  = "127.0.0.1:7488"
	defaultRecognitionBaseURL       = "https://api.audd.io/"
	defaultRecognitionMaxAttempts   = 3
	defaultRecognitionRetryDelay    = 3
	defaultRecognitionTimeout       = 30
	defaultSimilarityThreshold      = 0.7
	defaultBlockUnverifiedMatches   = true
	defaultDirectoryFileName        = "artists.db"
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	recognitionTokenEnv             = "AUDD_API_TOKEN"
	apiTokenEnv                     = "SOUNDGUARD_API_TOKEN"
	maxRecognitionAttemptsAllowed   = 10
	maxRecognitionRetryDelaySeconds = 60
)

// Default returns a Config populated with repository defaults. TempDir is left
// empty, which resolves to the operating system temp directory.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Recognition: Recognition{
			BaseURL:           defaultRecognitionBaseURL,
			MaxAttempts:       defaultRecognitionMaxAttempts,
			RetryDelaySeconds: defaultRecognitionRetryDelay,
			TimeoutSeconds:    defaultRecognitionTimeout,
		},
		Policy: Policy{
			SimilarityThreshold:    defaultSimilarityThreshold,
			BlockUnverifiedMatches: defaultBlockUnverifiedMatches,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
