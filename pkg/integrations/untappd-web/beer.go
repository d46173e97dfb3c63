package untappdweb

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"droscher.com/BeerCritic/pkg/model"
)

type BeerJSON struct {
	Description string `json:"description"`
	Brand       struct {
		Name string `json:"name"`
	} `json:"brand"`
	Image struct {
		ContentURL string `json:"contentUrl"`
	} `json:"image"`
	Sku             uint64 `json:"sku"`
	AggregateRating struct {
		RatingValue float64 `json:"ratingValue"`
		BestRating  string  `json:"bestRating"`
		ReviewCount int     `json:"reviewCount"`
	} `json:"aggregateRating"`
}

type BeerScraped struct {
	IDLink  string `attr:"href"          selector:"a.label"`
	Name    string `selector:".name > a"`
	Brewery string `selector:".brewery > a"`
	Style   string `selector:".style"`
	ABV     string `selector:".abv"`
	IBU     string `selector:".ibu"`
}

type BeerContent struct {
	Description string `selector:".beer-descrption-read-more"`
	ImageURL    string `attr:"src"                            selector:"a.label > img"`
	Rating      string `selector:".details .num"`
}

type scrapeResult struct {
	index int
	beer  model.BeerCandidate
	err   error
}

func (u *UntappedWebIntegration) FindBeer(name string) ([]model.BeerCandidate, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(u.domain),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs         error
		scrapedPages []BeerScraped
	)

	collector.OnHTML(".beer-item", func(element *colly.HTMLElement) {
		scraped := BeerScraped{}

		err := element.Unmarshal(&scraped)
		if multierr.AppendInto(&errs, err) {
			u.logger.Error("failed to unmarshal scraped beer", zap.Error(err))

			return
		}

		u.logger.Info("successfully scraped item from results", zap.String("id", lastSegment(scraped.IDLink)), zap.String("name", scraped.Name))

		scrapedPages = append(scrapedPages, scraped)
	})

	collector.OnError(func(response *colly.Response, err error) {
		u.logger.Error("error while scraping beer search results", zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	u.logger.Info("scraping query results", zap.String("query", name))
	multierr.AppendInto(&errs, collector.Visit(u.baseURL+"/search?q="+url.QueryEscape(name)))

	var beerWG sync.WaitGroup

	beerChan := make(chan scrapeResult, len(scrapedPages))

	for index, scraped := range scrapedPages {
		beerWG.Add(1)

		detailCollector := collector.Clone()

		go func() {
			defer beerWG.Done()

			beerChan <- u.getBeerData(detailCollector, index, scraped)
		}()
	}

	beerWG.Wait()
	close(beerChan)

	results := make([]model.BeerCandidate, len(scrapedPages))
	for scraped := range beerChan {
		results[scraped.index] = scraped.beer
		multierr.AppendInto(&errs, scraped.err)
	}

	u.logger.Info("finished scraping query results", zap.Int("results", len(results)), zap.Error(errs))

	return results, errs
}

func (u *UntappedWebIntegration) getBeerData(detailCollector *colly.Collector, index int, scraped BeerScraped) scrapeResult {
	beer := model.BeerCandidate{
		Name:           strings.TrimSpace(scraped.Name),
		Type:           strings.TrimSpace(scraped.Style),
		Brewery:        strings.TrimSpace(scraped.Brewery),
		ExternalSource: pointy.String(IntegrationName),
		ABV:            extractABV(scraped),
		IBU:            extractIBU(scraped),
	}

	detailCollector.OnHTML("head script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var beerJSON BeerJSON
		_ = json.Unmarshal([]byte(element.Text), &beerJSON)

		u.logger.Info("successfully scraped beer from JSON data", zap.Uint64("id", beerJSON.Sku), zap.String("description", beerJSON.Description))

		beer.Description = beerJSON.Description
		beer.ImageURL = beerJSON.Image.ContentURL
		beer.ExternalID = pointy.Uint64(beerJSON.Sku)
		beer.ExternalRating = pointy.Float64(beerJSON.AggregateRating.RatingValue)

		if beerJSON.Brand.Name != "" {
			beer.Brewery = beerJSON.Brand.Name
		}
	})

	detailCollector.OnHTML(".content", func(element *colly.HTMLElement) {
		beerContent := BeerContent{}

		err := element.Unmarshal(&beerContent)
		if err != nil {
			return
		}

		if len(beer.Description) == 0 {
			beer.Description = strings.TrimSpace(beerContent.Description)
		}

		if len(beer.ImageURL) == 0 {
			beer.ImageURL = beerContent.ImageURL
		}

		if beer.ExternalRating == nil {
			rating, err := strconv.ParseFloat(strings.Trim(beerContent.Rating, "() "), 64)
			if err == nil {
				beer.ExternalRating = pointy.Float64(rating)
			}
		}
	})

	idString := lastSegment(scraped.IDLink)
	u.logger.Info("scraping beer page", zap.String("id", idString))

	err := detailCollector.Visit(u.baseURL + "/beer/" + idString)
	if err == nil && beer.ExternalID == nil {
		externalID, err := strconv.ParseUint(idString, 10, 64)
		if err == nil {
			beer.ExternalID = pointy.Uint64(externalID)
		}
	}

	return scrapeResult{index: index, beer: beer, err: err}
}

func lastSegment(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}

func extractABV(details BeerScraped) *float64 {
	if strings.Contains(details.ABV, "%") {
		abv, err := strconv.ParseFloat(strings.TrimSpace(details.ABV[:strings.Index(details.ABV, "%")]), 64) //nolint: gocritic // We know we won't get -1
		if err != nil {
			return nil
		}

		return &abv
	}

	return nil
}

func extractIBU(details BeerScraped) *uint64 {
	ibu := strings.TrimSpace(details.IBU)
	if ibu == "" || strings.HasPrefix(ibu, "N/A") {
		return nil
	}

	value, err := strconv.ParseUint(strings.Split(ibu, " ")[0], 0, 64)
	if err != nil {
		return nil
	}

	return pointy.Uint64(value)
}
