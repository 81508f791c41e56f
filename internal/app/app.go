package app

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/taskdesk/internal/api"
	"example.com/taskdesk/internal/config"
	"example.com/taskdesk/internal/duedate"
	httphandlers "example.com/taskdesk/internal/handler/http"
	"example.com/taskdesk/internal/render"
	"example.com/taskdesk/internal/session"
	"example.com/taskdesk/internal/storage/memory"
	"example.com/taskdesk/internal/view"
)

// StubBasePath is where the stub backend mounts its routes.
const StubBasePath = "/api"

// App is the client side: session storage, token monitor, API client and the
// views built on them.
type App struct {
	Config     config.Config
	Session    session.Store
	Monitor    *session.Monitor
	Client     *api.Client
	Terminal   *render.Terminal
	Classifier *duedate.Classifier

	now  func() time.Time
	log  *logrus.Entry
	http *http.Client
}

type Option func(*App)

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithSessionStore(s session.Store) Option {
	return func(a *App) { a.Session = s }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) { a.http = hc }
}

func WithLogger(log *logrus.Entry) Option {
	return func(a *App) { a.log = log }
}

// New wires the client. Notices and login hints go to out.
func New(cfg config.Config, out io.Writer, opts ...Option) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	a := &App{
		Config:   cfg,
		Session:  session.NewFileStore(cfg.SessionFile),
		Terminal: render.NewTerminal(out),
		now:      time.Now,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(a)
	}

	mcfg := session.DefaultMonitorConfig()
	if cfg.WarnWindow > 0 {
		mcfg.WarnWindow = cfg.WarnWindow
	}
	a.Monitor = session.NewMonitor(a.Session, a.Terminal, a.Terminal,
		session.WithClock(a.now),
		session.WithConfig(mcfg),
		session.WithLogger(a.log),
	)
	clientOpts := []api.Option{api.WithLogger(a.log)}
	if a.http != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(a.http))
	}
	a.Client = api.New(api.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout}, a.Monitor, clientOpts...)
	a.Classifier = duedate.NewClassifier(duedate.WithClock(a.now), duedate.WithLocation(loc))
	return a, nil
}

func (a *App) viewOptions() []view.Option {
	return []view.Option{
		view.WithClock(a.now),
		view.WithLogger(a.log),
		view.WithConfig(view.Config{
			SweepInterval: a.Config.SweepInterval,
			CompletedTTL:  a.Config.CompletedTTL,
		}),
	}
}

func (a *App) Today() *view.Today {
	return view.NewToday(a.Client, a.Classifier, a.viewOptions()...)
}

func (a *App) Upcoming() *view.Upcoming {
	return view.NewUpcoming(a.Client, a.Classifier, a.viewOptions()...)
}

func (a *App) All() *view.All {
	return view.NewAll(a.Client, a.Classifier, a.viewOptions()...)
}

func (a *App) Lists() *view.Lists {
	return view.NewLists(a.Client, a.Client, a.Classifier, a.viewOptions()...)
}

// Stub is the development backend: gin routes over the in-memory store.
type Stub struct {
	Config config.Config
	Router http.Handler
	Store  *memory.Store
}

func NewStub(cfg config.Config, opts ...httphandlers.Option) (*Stub, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	store := memory.New()
	tokens := httphandlers.NewTokens(cfg.StubSecret, cfg.StubTokenTTL, time.Now)
	base := []httphandlers.Option{
		httphandlers.WithLocation(loc),
		httphandlers.WithLogger(logrus.WithField("component", "stub")),
	}
	if cfg.StubBcryptCost > 0 {
		base = append(base, httphandlers.WithBcryptCost(cfg.StubBcryptCost))
	}
	h := httphandlers.New(store, tokens, StubBasePath, append(base, opts...)...)
	return &Stub{
		Config: cfg,
		Router: h,
		Store:  store,
	}, nil
}
