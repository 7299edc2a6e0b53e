package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/config"
	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/normalize"
	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/render"
	"github.com/sells-group/certlookup/internal/source"
)

// lookupEnv holds everything the lookup commands share.
type lookupEnv struct {
	Loader  *source.Loader
	Catalog *source.Catalog
	Adapter *present.Adapter
	Engine  *render.Engine
}

// initLookup wires the source chain, the presentation adapter and the
// render engine from c. A non-empty locale overrides the configured one.
func initLookup(c *config.Config, locale string) (*lookupEnv, error) {
	n, err := normalize.New(c.Source.Columns)
	if err != nil {
		return nil, eris.Wrap(err, "init normalizer")
	}

	readers := source.DefaultRegistry(source.Options{
		Sheets:      c.Source.Sheets,
		Encodings:   c.Source.Encodings,
		Delimiter:   c.Source.DelimiterRune(),
		SQLiteTable: c.Source.SQLiteTable,
	})
	candidates := append(source.UploadCandidates(c.Source.UploadDir, readers), c.Source.Candidates...)
	loader := source.NewLoader(candidates, readers, n)

	if locale == "" {
		locale = c.Render.Locale
	}
	adapter := present.NewAdapter(present.ParseLocale(locale), present.Literals{
		Manufacturer:     c.Render.Manufacturer,
		InspectionMethod: c.Render.InspectionMethod,
		CertifyingBody:   c.Render.CertifyingBody,
	}, c.Render.Title)

	engine := render.NewEngine(render.Options{
		FontPaths:        c.Render.FontPaths,
		HeadingFontPaths: c.Render.HeadingFontPaths,
		LogoPath:         c.Render.LogoPath,
	})

	zap.L().Debug("lookup initialized",
		zap.Strings("candidates", candidates),
		zap.String("locale", string(adapter.Locale())),
		zap.Bool("logo", engine.HasLogo()),
		zap.String("font", engine.FontPath()),
	)

	return &lookupEnv{
		Loader:  loader,
		Catalog: source.NewCatalog(loader),
		Adapter: adapter,
		Engine:  engine,
	}, nil
}

// requireQuery rejects blank queries before any lookup happens.
func requireQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", eris.New("query must not be empty")
	}
	return q, nil
}

// noData is the message shown when no source can be read.
func noData(err error) error {
	if source.IsUnavailable(err) {
		return eris.Wrap(err, "no data")
	}
	return err
}

func describeSet(set *model.RecordSet) string {
	if set == nil {
		return "not loaded"
	}
	return set.Source() + " (" + set.Version() + ")"
}
