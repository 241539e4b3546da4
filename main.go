// main.go
//
// Entry point for the games blog server.
// Responsibilities:
//   - Load .env and configuration, set the zerolog level.
//   - Open the lookup memo database and apply embedded migrations.
//   - Assemble the dictionary (word list, API client, or both).
//   - Load blog posts, schedule idle-session sweeps, start HTTP.

package main

import (
	"database/sql"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/blog/assets"
	"github.com/robalobadob/blog/internal/bee"
	"github.com/robalobadob/blog/internal/blog"
	"github.com/robalobadob/blog/internal/config"
	"github.com/robalobadob/blog/internal/dictionary"
	"github.com/robalobadob/blog/internal/httpserver"
	"github.com/robalobadob/blog/internal/metrics"
	"github.com/robalobadob/blog/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.CacheDSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.CacheDSN).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	dict, err := buildDictionary(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("dictionary")
	}

	posts, err := blog.Load(postsFS(cfg.PostsDir))
	if err != nil {
		log.Fatal().Err(err).Msg("load posts")
	}

	mem := store.NewMemoryStore()
	sweeper := store.NewSweeper(mem, cfg.SessionIdle)
	c := cron.New()
	if _, err := sweeper.Schedule(c, "@every 5m"); err != nil {
		log.Fatal().Err(err).Msg("schedule session sweep")
	}
	c.Start()
	defer c.Stop()

	srv, err := httpserver.New(mem, httpserver.Options{
		Dictionary:    dict,
		Blog:          posts,
		Rules:         bee.DefaultRules,
		SessionSecret: cfg.SessionSecret,
		DailySalt:     cfg.DailySalt,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.Production,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("dictionary", cfg.DictionaryMode).
		Int("posts", posts.Len()).
		Msg("starting blog server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// buildDictionary assembles the lookup stack for cfg.DictionaryMode.
// The API client is always behind the SQL memo; every source is observed.
func buildDictionary(cfg config.Config, db *sql.DB) (dictionary.Lookup, error) {
	var links dictionary.Chain

	if cfg.DictionaryMode == config.DictList || cfg.DictionaryMode == config.DictChain {
		wl, err := dictionary.LoadWordList(cfg.WordsFile)
		if err != nil {
			return nil, err
		}
		log.Info().Int("words", wl.Len()).Msg("word list loaded")
		links = append(links, dictionary.Observed{Source: "list", Next: wl, Observe: metrics.ObserveLookup})
	}

	if cfg.DictionaryMode == config.DictAPI || cfg.DictionaryMode == config.DictChain {
		client := dictionary.NewClient(cfg.DictionaryURL, cfg.DictionaryRPS, cfg.DictionaryTimeout)
		api := dictionary.Observed{Source: "api", Next: client, Observe: metrics.ObserveLookup}
		links = append(links, dictionary.NewSQLCache(db, api))
	}

	if len(links) == 1 {
		return links[0], nil
	}
	return links, nil
}

// postsFS returns dir as a filesystem, or the embedded posts when dir is empty.
func postsFS(dir string) fs.FS {
	if dir == "" {
		return assets.Posts()
	}
	return os.DirFS(dir)
}
