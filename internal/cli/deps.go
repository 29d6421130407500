package cli

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"quizcast/internal/app"
	"quizcast/internal/config"
	"quizcast/internal/domain"
	"quizcast/internal/infra/memory"
	"quizcast/internal/infra/postgres"
	infraredis "quizcast/internal/infra/redis"
	"quizcast/internal/question"
)

// stores bundles every wired backend. Postgres and redis are optional;
// in-memory fallbacks keep the binary usable without either.
type stores struct {
	db      *bun.DB
	pgxPool *pgxpool.Pool
	redis   *goredis.Client

	dlog    app.DistributionLog
	tracker app.ResponseTracker
	ranking app.RankingStore
	stats   app.StatsReader
	pool    *question.Pool
}

func (s *stores) Close() {
	if s.pgxPool != nil {
		s.pgxPool.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config %s not found, using defaults", path)
			return config.Default(), nil
		}
		return config.Config{}, err
	}
	return cfg, nil
}

func buildStores(ctx context.Context, cfg config.Config) (*stores, error) {
	s := &stores{}

	if cfg.Redis.Addr != "" {
		s.redis = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var memLog *memory.DistributionLog
	if cfg.Postgres.URL != "" {
		s.db = postgres.Open(cfg.Postgres.URL)
		s.dlog = postgres.NewDistributionLog(s.db)

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.pgxPool = pool
	} else {
		memLog = memory.NewDistributionLog()
		s.dlog = memLog
	}

	if cfg.Broadcast.Anonymous {
		s.tracker = app.NewAnonymousTracker(s.dlog)
	} else if s.db != nil {
		var mirror postgres.RankingMirror
		if s.redis != nil {
			mirror = infraredis.NewRankingStore(s.redis)
		}
		tracker := postgres.NewAttributedTracker(s.db, mirror)
		s.tracker = tracker
		s.stats = tracker
		if s.redis != nil {
			s.ranking = infraredis.NewRankingStore(s.redis)
		} else {
			s.ranking = postgres.NewRankingStore(s.db)
		}
	} else {
		tracker := memory.NewTracker(memLog)
		s.tracker = tracker
		s.stats = tracker
		s.ranking = tracker
	}

	var loader question.Loader
	switch {
	case s.pgxPool != nil:
		loader = question.NewPostgresLoader(s.pgxPool)
	case cfg.Questions.File != "":
		loader = question.NewFileLoader(cfg.Questions.File)
	default:
		loader = question.NewStaticLoader(sampleQuestions())
	}
	ttl := config.Duration(cfg.Questions.TTL, 10*time.Minute)
	s.pool = question.NewPool(loader, ttl)

	return s, nil
}

func buildBroadcaster(cfg config.Config, s *stores, transport app.Transport) (*app.Broadcaster, error) {
	cadence, err := app.NewCadence(cfg.Cadence)
	if err != nil {
		return nil, err
	}
	examDate, err := config.Date(cfg.Broadcast.ExamDate)
	if err != nil {
		return nil, err
	}
	reporter := app.NewReporter(s.dlog, cfg.Report)
	return app.NewBroadcaster(transport, s.dlog, s.pool, app.NewSelector(), cadence, reporter, app.BroadcasterConfig{
		Lookback:   config.Duration(cfg.Selection.Lookback, 24*time.Hour),
		Pace:       config.Duration(cfg.Broadcast.Pace, 3*time.Second),
		ExamDate:   examDate,
		ShareURL:   cfg.Broadcast.ShareURL,
		TopicIcons: cfg.Broadcast.TopicIcons,
		Anonymous:  cfg.Broadcast.Anonymous,
	}), nil
}

// sampleQuestions provides a minimal pool; swap in a file or postgres source in production.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:         "Which body is the supreme consultative organ of the Government?",
			Options:      []string{"Council of State", "Court of Auditors", "Ombudsman"},
			CorrectIndex: 0,
			Topic:        "Constitution",
		},
		{
			Text:         "What is 2 + 2?",
			Options:      []string{"3", "4", "5"},
			CorrectIndex: 1,
			Explanation:  "Basic arithmetic.",
			Topic:        "Logic",
		},
	}
}
