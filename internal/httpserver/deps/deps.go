package deps

import (
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
	"github.com/tonypeanut/fullstack-notes-full/internal/web"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	Session        *session.Store   // current token, injected explicitly (no singletons)
	Syncer         *syncer.Syncer   // note/category state container
	API            *api.Client      // remote notes API client
	Renderer       *web.Renderer    // server-side views
	RefreshTrigger chan struct{}    // channel to force a background re-sync
	AllowedCIDRS   []string         // IPs allowed to reach the gateway (empty = open)
	TrustProxy     bool             // true if running behind a trusted reverse proxy
}
