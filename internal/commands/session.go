package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finboard-dev/finboard/internal/accounts"
	"github.com/finboard-dev/finboard/internal/activity"
	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/logger"
	"github.com/finboard-dev/finboard/internal/storage"
)

// session is one command's view of the ledger: the repository it came from
// and a service over its contents.
type session struct {
	app       *app
	repo      storage.Repository
	svc       *ledger.Service
	catalog   *accounts.Catalog
	suggester *ledger.Suggester
	log       zerolog.Logger
	seeded    bool
}

// openSession loads the ledger from the configured repository. A repository
// that has never been saved starts from the sample transactions.
func (a *app) openSession(ctx context.Context) (*session, error) {
	log := logger.FromContext(ctx)
	repo, err := storage.Open(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	txns, err := repo.Load(ctx)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	seeded := false
	if txns == nil {
		txns = ledger.Seed()
		seeded = true
		log.Debug().Int("count", len(txns)).Msg("starting from sample transactions")
	}

	sortCfg, err := a.viewSort()
	if err != nil {
		repo.Close()
		return nil, err
	}

	svc := ledger.NewService(ledger.NewStore(txns, id.NewGenerator()), ledger.Options{
		Sort:                   sortCfg,
		ClearSelectionOnFilter: a.cfg.View.ClearSelectionOnFilter,
		Logger:                 log,
	})

	return &session{
		app:       a,
		repo:      repo,
		svc:       svc,
		catalog:   accounts.NewCatalog(a.cfg.Accounts),
		suggester: ledger.NewSuggester(a.cfg.Rules),
		seeded:    seeded,
	}, nil
}

func (a *app) viewSort() (ledger.SortConfig, error) {
	cfg := ledger.DefaultSort
	if a.cfg.View.SortKey != "" {
		key, err := ledger.ParseSortKey(a.cfg.View.SortKey)
		if err != nil {
			return cfg, fmt.Errorf("view.sort_key: %w", err)
		}
		cfg.Key = key
	}
	if a.cfg.View.SortDirection != "" {
		dir, err := ledger.ParseDirection(a.cfg.View.SortDirection)
		if err != nil {
			return cfg, fmt.Errorf("view.sort_direction: %w", err)
		}
		cfg.Direction = dir
	}
	return cfg, nil
}

// commit saves the ledger and appends this session's activity to the log.
func (s *session) commit(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.svc.Store().All()); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	if d := strings.ToLower(s.app.cfg.Storage.Driver); d == "" || d == storage.DriverMemory {
		s.log.Warn().Msg("memory storage: changes are discarded when the command exits")
	}
	if path := s.app.cfg.ActivityLog; path != "" {
		if err := activity.Append(path, s.svc.Activity()); err != nil {
			return fmt.Errorf("writing activity log: %w", err)
		}
	}
	return nil
}

func (s *session) close() {
	if err := s.repo.Close(); err != nil {
		s.log.Warn().Err(err).Msg("closing storage")
	}
}
