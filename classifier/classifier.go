// Package classifier assigns a category to an issue report and resolves the
// department that owns it.
//
// Text always gets a category: the external model is consulted when
// configured, and any failure (unconfigured, unreachable, timeout, non-2xx,
// open breaker) falls back to keyword rules. Images have no local fallback,
// so ClassifyImage fails with errs.ErrClassificationUnavailable instead.
package classifier

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/metrics"
)

const defaultTimeout = 4 * time.Second

// Config selects the external endpoints. Empty values disable them.
type Config struct {
	TextEndpoint  string        `koanf:"text_endpoint" validate:"omitempty,url"`
	Token         string        `koanf:"token"`
	ImageEndpoint string        `koanf:"image_endpoint" validate:"omitempty,url"`
	Timeout       time.Duration `koanf:"timeout"`
}

// TextEnabled reports whether the hosted text model should be called.
func (c Config) TextEnabled() bool {
	return c.TextEndpoint != "" && c.Token != ""
}

func (c Config) ImageEnabled() bool {
	return c.ImageEndpoint != ""
}

// ErrImageEndpointMissing is the cause reported when no image endpoint is configured.
var ErrImageEndpointMissing = errors.New("no image classification endpoint configured")

type Classifier struct {
	cfg     Config
	timeout time.Duration
	text    *textClient
	image   *imageClient
}

// New builds a classifier from cfg. A nil httpClient uses a default client.
func New(cfg Config, httpClient *http.Client) *Classifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Classifier{cfg: cfg, timeout: timeout}
	if cfg.TextEnabled() {
		c.text = &textClient{
			endpoint: cfg.TextEndpoint,
			token:    cfg.Token,
			http:     httpClient,
			breaker:  newBreaker("classifier-text"),
		}
	}
	if cfg.ImageEnabled() {
		c.image = &imageClient{
			endpoint: cfg.ImageEndpoint,
			http:     httpClient,
			breaker:  newBreaker("classifier-image"),
		}
	}
	return c
}

// ClassifyText returns a category for text. It never fails.
func (c *Classifier) ClassifyText(ctx context.Context, text string) string {
	if c.text == nil {
		metrics.Classifications.WithLabelValues("keyword", "ok").Inc()
		return ClassifyByKeywords(text)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	category, err := c.text.classify(ctx, text)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("text classifier unavailable, using keyword rules")
		metrics.Classifications.WithLabelValues("external", "fallback").Inc()
		return ClassifyByKeywords(text)
	}
	metrics.Classifications.WithLabelValues("external", "ok").Inc()
	return category
}

// ClassifyImage returns a category for an image. It fails with
// errs.ErrClassificationUnavailable when the image endpoint is missing or
// does not answer successfully.
func (c *Classifier) ClassifyImage(ctx context.Context, image []byte, filename string) (string, error) {
	if c.image == nil {
		metrics.Classifications.WithLabelValues("image", "unavailable").Inc()
		return "", errs.ClassificationUnavailable(ErrImageEndpointMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	category, err := c.image.classify(ctx, image, filename)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("image classifier unavailable")
		metrics.Classifications.WithLabelValues("image", "unavailable").Inc()
		return "", errs.ClassificationUnavailable(err)
	}
	metrics.Classifications.WithLabelValues("image", "ok").Inc()
	return category, nil
}
