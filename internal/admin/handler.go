// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
)

type EntitlementInspector interface {
	Inspect(ctx context.Context, userID string) (*entitlement.RecordInfo, error)
	GuestUsage(ctx context.Context, fingerprint string) (*entitlement.GuestUsage, error)
}

type Handler struct {
	redisStats   func() *redis.PoolStats
	redisPing    func(ctx context.Context) error
	storagePing  func(ctx context.Context) error
	entitlements EntitlementInspector
}

// HandlerConfig fields are optional. Redis fields stay nil when the service
// runs without Redis.
type HandlerConfig struct {
	RedisStats   func() *redis.PoolStats
	RedisPing    func(ctx context.Context) error
	StoragePing  func(ctx context.Context) error
	Entitlements EntitlementInspector
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		redisStats:   cfg.RedisStats,
		redisPing:    cfg.RedisPing,
		storagePing:  cfg.StoragePing,
		entitlements: cfg.Entitlements,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/entitlements/{userID}", h.GetEntitlement)
		r.Get("/guests/{fingerprint}", h.GetGuestUsage)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	core.OK(w, SystemStatsResponse{
		Redis: RedisStatus{
			Configured: h.redisPing != nil,
			Healthy:    pingOK(ctx, h.redisPing),
			Stats:      h.getRedisStats(),
		},
		Storage: StorageStatus{
			Healthy: pingOK(ctx, h.storagePing),
		},
		Runtime: runtimeStats(),
	})
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, runtimeStats())
}

func (h *Handler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	if h.entitlements == nil {
		core.JSONError(w, core.UnavailableError("entitlement store unavailable"))
		return
	}

	info, err := h.entitlements.Inspect(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, info)
}

func (h *Handler) GetGuestUsage(w http.ResponseWriter, r *http.Request) {
	if h.entitlements == nil {
		core.JSONError(w, core.UnavailableError("entitlement store unavailable"))
		return
	}

	usage, err := h.entitlements.GuestUsage(r.Context(), chi.URLParam(r, "fingerprint"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, usage)
}

func pingOK(ctx context.Context, ping func(context.Context) error) bool {
	return ping != nil && ping(ctx) == nil
}

func runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

type SystemStatsResponse struct {
	Redis   RedisStatus   `json:"redis"`
	Storage StorageStatus `json:"storage"`
	Runtime RuntimeStats  `json:"runtime"`
}

type RedisStatus struct {
	Configured bool            `json:"configured"`
	Healthy    bool            `json:"healthy"`
	Stats      *RedisPoolStats `json:"stats,omitempty"`
}

type StorageStatus struct {
	Healthy bool `json:"healthy"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
