// Package health exposes a minimal read-only HTTP surface: process
// liveness and a per-symbol state/profit snapshot. Grounded on the
// teacher's api/server.go gin usage — the teacher's own API surface is a
// far larger multi-user REST CRUD plane; this one is deliberately small
// since the system's real control plane is the operator console
// (SPEC_FULL.md §6).
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bingxgrid/ledger"
	"bingxgrid/tasks"
)

// Server is the read-only health/status HTTP surface.
type Server struct {
	engine *gin.Engine
	addr   string
}

func NewServer(addr string, led *ledger.Ledger, tr *tasks.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/symbols", func(c *gin.Context) {
		symbols := led.Symbols()
		out := make([]gin.H, 0, len(symbols))
		for _, s := range symbols {
			out = append(out, gin.H{
				"symbol":   s,
				"state":    led.GetState(s),
				"profit":   led.GetProfit(s),
				"running":  tr.Running(s),
				"lot":      led.GetLot(s),
				"gridSize": led.GetGridSize(s),
			})
		}
		c.JSON(http.StatusOK, out)
	})

	return &Server{engine: r, addr: addr}
}

// Run blocks serving until the process is killed; main.go runs it in its
// own goroutine and doesn't wait on it during graceful shutdown (a health
// endpoint going away alongside the process is fine).
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}
