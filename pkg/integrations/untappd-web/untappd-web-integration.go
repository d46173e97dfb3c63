package untappdweb

import (
	"net/url"

	"go.uber.org/zap"
)

const (
	IntegrationName = "untappd_web"
	defaultBaseURL  = "https://untappd.com"
)

type UntappedWebIntegration struct {
	logger  *zap.Logger
	baseURL string
	domain  string
}

func NewUntappedWebIntegration(logger *zap.Logger) *UntappedWebIntegration {
	return NewUntappedWebIntegrationWithBaseURL(defaultBaseURL, logger)
}

// NewUntappedWebIntegrationWithBaseURL points the scraper at another host
// serving the same pages.
func NewUntappedWebIntegrationWithBaseURL(baseURL string, logger *zap.Logger) *UntappedWebIntegration {
	domain := "untappd.com"
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Hostname() != "" {
		domain = parsed.Hostname()
	}

	return &UntappedWebIntegration{logger: logger, baseURL: baseURL, domain: domain}
}
