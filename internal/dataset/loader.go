package dataset

import (
	"context"

	"github.com/mahendraputra/idx-radar/internal/derive"
	"github.com/mahendraputra/idx-radar/internal/feed"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// NewFeedLoader composes the feed client and the deriver into a cache
// loader. A failing primary feed fails the load; a failing sector feed
// only degrades the dataset to empty sector assignment.
func NewFeedLoader(client *feed.Client, deriver *derive.Deriver) Loader {
	return func(ctx context.Context) (*Snapshot, error) {
		records, err := client.FetchRecords(ctx)
		if err != nil {
			return nil, err
		}

		sectors, err := client.FetchSectors(ctx)
		if err != nil {
			logger.DatasetLoadErrors.WithLabelValues("sector").Inc()
			logger.Warn("Sector feed unavailable, continuing unsegmented",
				logger.ErrorField(err),
			)
			sectors = map[string]string{}
		}

		enriched := deriver.DeriveAll(records, sectors)

		return &Snapshot{
			Records: enriched,
			Latest:  derive.LatestPerStock(enriched),
		}, nil
	}
}
