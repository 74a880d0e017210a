package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	"github.com/dberzins/stockroom/internal/client/config"
	"github.com/dberzins/stockroom/internal/client/localdb"
	"github.com/dberzins/stockroom/internal/client/remote"
	"github.com/dberzins/stockroom/internal/client/repositories/items"
	"github.com/dberzins/stockroom/internal/client/session"
	"github.com/dberzins/stockroom/internal/client/sync"
	"github.com/dberzins/stockroom/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	client      remote.Client
	session     *session.Store
	coordinator *sync.Coordinator
	items       items.Repository
	db          *sql.DB
	reader      *bufio.Reader
	userEmail   string
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	sess := session.NewStore()
	apiClient := remote.NewRESTClient(c.ServerBaseURL, c.APIKey, sess, logger)
	repo := items.NewSQLiteRepository(db)

	coordinator := sync.NewCoordinator(apiClient, sess, logger)
	coordinator.SetStaleAfter(c.StaleAfter)
	coordinator.SetLocalStore(repo)

	return &App{
		config:      c,
		client:      apiClient,
		session:     sess,
		coordinator: coordinator,
		items:       repo,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	log.Println("Welcome to Stockroom CLI (type 'help' for commands)")

	go a.startChangeWatcher(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		log.Printf("error closing client: %s", err.Error())
	}
	if err := a.db.Close(); err != nil {
		log.Printf("error closing database: %s", err.Error())
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Get()
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail
	}
	if org := a.session.Organization(); org != "" {
		if s != "" {
			s = s + " @ "
		}
		s = s + org
	}
	return s
}

// startChangeWatcher holds the single change subscription for the lifetime
// of the app and announces data changes on the terminal.
func (a *App) startChangeWatcher(ctx context.Context) {
	ch := a.coordinator.Subscribe()
	defer a.coordinator.Unsubscribe()

	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			printlnFn("(inventory changed, run 'list' or 'items' to see the latest)")
		case <-ctx.Done():
			return
		}
	}
}
