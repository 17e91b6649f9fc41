package cmd

import (
	"context"
	"database/sql"

	"github.com/ghie29/avmango/bulk"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/network"
	"github.com/ghie29/avmango/playback"
	"github.com/ghie29/avmango/query"
	"github.com/ghie29/avmango/search"
	"github.com/ghie29/avmango/structured"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// app is the set of services every catalog command works with.
type app struct {
	db       *sql.DB
	registry *category.Registry
	resolver *playback.Resolver
	search   *search.Aggregator
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{}

	descriptors := category.Builtins(viper.GetString(key.StructuredBoard), viper.GetString(key.BulkBaseURL))

	dsn := viper.GetString(key.DatabaseDSN)
	driver := viper.GetString(key.DatabaseDriver)
	if dsn == "" {
		log.Warnf("%s is not set, structured categories are disabled", key.DatabaseDSN)
		descriptors = lo.Reject(descriptors, func(d category.Descriptor, _ int) bool {
			return d.Kind() == catalog.KindStructured
		})
	} else {
		db, err := structured.Open(ctx, driver, dsn)
		if err != nil {
			return nil, err
		}
		if driver == structured.DriverSQLite {
			if err := structured.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		a.db = db
	}

	client := bulk.NewClient(
		network.NewClient(viper.GetDuration(key.BulkTimeout)),
		viper.GetInt(key.BulkPageSize),
		viper.GetDuration(key.BulkPageDelay),
	)

	registry, err := category.NewRegistry(descriptors, category.Factory{
		Structured: func(d category.Structured) (catalog.Source, error) {
			return structured.New(a.db, driver, d), nil
		},
		Bulk: func(d category.Bulk) (catalog.Source, error) {
			return bulk.New(client, d), nil
		},
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = registry

	structuredSources := registry.Sources(catalog.KindStructured)
	bulkSources := registry.Sources(catalog.KindBulk)

	a.resolver = playback.New(bulkSources, structuredSources, viper.GetInt(key.PlaybackRelatedLimit))
	a.search = search.New(structuredSources, bulkSources, search.WithHistory(remember))

	return a, nil
}

func remember(term string) error {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}
	return query.Remember(term, 1)
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Warnf("close database: %s", err)
		}
	}
}

func mustApp(ctx context.Context) *app {
	a, err := newApp(ctx)
	handleErr(err)
	return a
}
