package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how many requests remain for the API key",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.search.Status(ctx)
		}),
	}
}

type searchFlags struct {
	location     string
	searchEngine string
	limit        int
	offset       int
	tbm          string
	device       string
	timeframe    string
	gl           string
	lr           string
	hl           string
	latitude     string
	longitude    string
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Run a search and print the raw result page",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
		in, err := f.input(cmd, cmd.Flags().Arg(0))
		if err != nil {
			return nil, err
		}
		return a.search.Search(ctx, in)
	})

	cmd.Flags().StringVar(&f.location, "location", "", "Location, e.g. \"Tokyo,Japan\"")
	cmd.Flags().StringVar(&f.searchEngine, "search-engine", "", "Search engine domain, e.g. google.co.jp")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Number of results (1-100)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Result offset")
	cmd.Flags().StringVar(&f.tbm, "tbm", "", "Search type: isch, vid, lcl, nws or shop")
	cmd.Flags().StringVar(&f.device, "device", "", "Device: desktop or mobile")
	cmd.Flags().StringVar(&f.timeframe, "timeframe", "", "Time frame restriction")
	cmd.Flags().StringVar(&f.gl, "gl", "", "Country code")
	cmd.Flags().StringVar(&f.lr, "lr", "", "Language restriction, e.g. lang_en|lang_ja")
	cmd.Flags().StringVar(&f.hl, "hl", "", "Interface language code")
	cmd.Flags().StringVar(&f.latitude, "latitude", "", "Latitude")
	cmd.Flags().StringVar(&f.longitude, "longitude", "", "Longitude")

	return cmd
}

// input переводит флаги в SearchInput; limit и offset учитываются только если заданы явно.
func (f *searchFlags) input(cmd *cobra.Command, query string) (domain.SearchInput, error) {
	in := domain.SearchInput{
		Query:        query,
		Location:     f.location,
		SearchEngine: f.searchEngine,
		Timeframe:    f.timeframe,
		GL:           f.gl,
		LR:           f.lr,
		HL:           f.hl,
		Latitude:     f.latitude,
		Longitude:    f.longitude,
	}
	if cmd.Flags().Changed("limit") {
		in.Limit = domain.IntPtr(f.limit)
	}
	if cmd.Flags().Changed("offset") {
		in.Offset = domain.IntPtr(f.offset)
	}
	if f.tbm != "" {
		tbm, err := domain.ParseTBM(f.tbm)
		if err != nil {
			return domain.SearchInput{}, err
		}
		in.TBM = tbm
	}
	if f.device != "" {
		device, err := domain.ParseDevice(f.device)
		if err != nil {
			return domain.SearchInput{}, err
		}
		in.Device = device
	}
	return in, nil
}

func newHLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hl",
		Short: "List interface language codes",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.catalog.HL(ctx)
		}),
	}
}

func newGLCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gl",
		Short: "List country codes",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.catalog.GL(ctx)
		}),
	}
}

func newLocationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List supported locations",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.catalog.Locations(ctx)
		}),
	}
}

func newSearchEnginesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search-engines",
		Short: "List supported search engine domains",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.catalog.SearchEngines(ctx)
		}),
	}
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Fetch hl, gl, locations and search engines in one call",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.catalog.All(ctx)
		}),
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches (requires DATABASE_URL)",
		Args:  cobra.NoArgs,
		RunE: runWithApp(opts, func(ctx context.Context, a *app) (any, error) {
			if limit <= 0 {
				return nil, fmt.Errorf("--limit must be positive, got %d", limit)
			}
			return a.search.History(ctx, limit)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Number of records to show")

	return cmd
}
