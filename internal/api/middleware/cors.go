package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Origins is the CORS allow-list. It can be swapped while the server runs.
type Origins struct {
	mu      sync.RWMutex
	allowed map[string]struct{}
	any     bool
}

func NewOrigins(domains []string) *Origins {
	o := &Origins{}
	o.Set(domains)
	return o
}

func (o *Origins) Set(domains []string) {
	allowed := make(map[string]struct{}, len(domains))
	wildcard := false
	for _, d := range domains {
		d = strings.TrimRight(strings.TrimSpace(d), "/")
		if d == "*" {
			wildcard = true
			continue
		}
		if d != "" {
			allowed[d] = struct{}{}
		}
	}

	o.mu.Lock()
	o.allowed = allowed
	o.any = wildcard
	o.mu.Unlock()
}

func (o *Origins) Allow(origin string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.any {
		return true
	}
	_, ok := o.allowed[origin]
	return ok
}

// ConfigCORS allows credentialed requests from the listed origins, so auth
// cookies travel with cross-origin calls from the front end.
func ConfigCORS(origins *Origins) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: origins.Allow,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
