package client

import (
	"errors"

	"github.com/1broseidon/textviz/common"
	"github.com/1broseidon/textviz/internal/logging"
)

// ErrUnsupportedProvider is returned when an unsupported provider is specified
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ClientOption is a function type for configuring the Client.
// It allows for flexible and extensible client configuration.
type ClientOption func(*Client)

// WithProvider registers a provider under name, the part before the slash in model strings.
func WithProvider(name string, provider Provider) ClientOption {
	return func(c *Client) {
		c.providers[name] = provider
	}
}

// WithSummaryModel sets the "provider/model" used for the summarize step.
func WithSummaryModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.summaryModel = model
		}
	}
}

// WithDiagramModel sets the "provider/model" used to write diagram markup.
func WithDiagramModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.diagramModel = model
		}
	}
}

// WithImageModel sets the "provider/model" used for illustrations.
func WithImageModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

// WithAspectRatio sets the aspect ratio requested for illustrations, e.g. "16:9".
func WithAspectRatio(ratio string) ClientOption {
	return func(c *Client) {
		if ratio != "" {
			c.aspectRatio = ratio
		}
	}
}

// WithLanguage sets the natural language used for summaries and labels.
func WithLanguage(language string) ClientOption {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithLogger sets the logger for the client.
// The provided logger will be used for all logging operations within the client.
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogLevel sets the log level for the client.
// This option will only take effect if the client's logger supports setting log levels.
func WithLogLevel(level common.LogLevel) ClientOption {
	return func(c *Client) {
		if logger, ok := c.logger.(interface{ SetLevel(common.LogLevel) }); ok {
			logger.SetLevel(level)
		}
	}
}
