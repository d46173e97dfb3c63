package integrations

import (
	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/integrations/untappd-web"
	"droscher.com/BeerCritic/pkg/model"
)

type Integration interface {
	FindBeer(name string) ([]model.BeerCandidate, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == untappdweb.IntegrationName {
		return untappdweb.NewUntappedWebIntegration(logger)
	}

	return nil
}
