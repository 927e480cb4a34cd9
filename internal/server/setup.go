package server

import (
	"fmt"

	"github.com/danielledeleo/createpage/internal/config"
	"github.com/danielledeleo/createpage/internal/embedded"
	"github.com/danielledeleo/createpage/internal/metrics"
	"github.com/danielledeleo/createpage/internal/storage"
	"github.com/danielledeleo/createpage/special"
	"github.com/danielledeleo/createpage/templater"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/danielledeleo/createpage/wiki/service"
	"github.com/jmoiron/sqlx"
)

// Setup loads configuration from config.yaml and bootstraps the App. The
// caller owns app.DB and must close it.
func Setup() (*App, error) {
	return Bootstrap(config.SetupConfig())
}

// Bootstrap opens and migrates the database named in modelConf and wires the
// App around it.
func Bootstrap(modelConf *wiki.Config) (*App, error) {
	db, err := storage.Open(modelConf.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	app, err := NewApp(modelConf, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// NewApp wires services around an already migrated database.
func NewApp(modelConf *wiki.Config, db *sqlx.DB) (*App, error) {
	namespaces, err := wiki.NewNamespaceRegistryFromConfig(modelConf)
	if err != nil {
		return nil, fmt.Errorf("namespaces: %w", err)
	}

	urls, err := wiki.NewURLBuilder(modelConf.BaseURL, modelConf.ArticlePath)
	if err != nil {
		return nil, err
	}

	runtimeConfig, err := wiki.LoadRuntimeConfig(db.DB, modelConf.UseRichEditor)
	if err != nil {
		return nil, fmt.Errorf("load runtime config: %w", err)
	}

	t := templater.New()
	if err := t.Load(embedded.Templates(), embedded.BaseGlob, embedded.PageGlob, embedded.SpecialGlob); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	database, err := storage.Init(db)
	if err != nil {
		return nil, err
	}

	pageService := service.NewPageService(database)

	editor := service.NewEditorSettings(db.DB, runtimeConfig.UseRichEditor)

	m := metrics.New()

	creation := service.NewPageCreationRouter(namespaces, m.TimePageChecker(pageService), urls, editor)

	tokens := special.NewFormTokens(runtimeConfig.CookieSecret, modelConf.FormTokenMaxAge)

	specialPages := special.NewRegistry()
	specialPages.Register(service.CreatePageName, special.NewCreatePage(creation, t, tokens, modelConf.StoreTimeout, m))

	return &App{
		Templater:     t,
		Pages:         pageService,
		Creation:      creation,
		Editor:        editor,
		SpecialPages:  specialPages,
		Namespaces:    namespaces,
		URLs:          urls,
		Config:        modelConf,
		RuntimeConfig: runtimeConfig,
		DB:            db,
		Metrics:       m,
	}, nil
}
