package deps

import (
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	Bookmarks          *bookmarks.Service // bookmark resource service
	APIToken           string             // static bearer token for the bookmark routes
	Production         bool               // true => generic 500 bodies
	AllowedHosts       []string           // Host headers allowed to access the bookmark routes
	AllowedCIDRS       []string           // IPs allowed to access healthz/readyz endpoints
	TrustProxy         bool               // true if running behind a trusted reverse proxy
	RateLimitBurst     int                // 0 disables rate limiting on the bookmark routes
	RateLimitPerMinute int                // token refill per client IP
}
