// mapctl is a headless operator console for the route dashboard: it drives
// the map controller against a running routedash server, logging what a real
// rendering surface would draw. Useful for smoke-testing routes and pricing
// without a browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"routedash/internal/config"
	"routedash/internal/mapview"
	"routedash/pkg/dashapi"
)

type consoleCards struct {
	client *dashapi.Client
	logger *slog.Logger
}

func (c *consoleCards) LoadCustomerCard(ctx context.Context, locationID string) {
	html, err := c.client.CustomerCard(ctx, locationID)
	if err != nil {
		c.logger.Error("customer card fetch failed", "location_id", locationID, "error", err)
		return
	}
	c.logger.Info("customer card", "location_id", locationID, "html", html)
}

type consoleTable struct {
	logger *slog.Logger
}

func (t *consoleTable) HighlightRow(locationID string) {
	t.logger.Info("table row highlighted", "location_id", locationID)
}

type consolePanel struct {
	logger *slog.Logger
}

func (p *consolePanel) SetHTML(html string) {
	p.logger.Info("pricing panel", "html", html)
}

func main() {
	routeID := flag.String("route", "", "route id to load")
	stopID := flag.String("focus", "", "stop location id to focus after loading")
	poll := flag.Bool("poll", false, "keep polling the route until interrupted")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	client := dashapi.New(cfg.DashAPIBaseURL)

	ctrl := mapview.New(
		mapview.Config{
			AccessToken: cfg.MapboxAccessToken,
			Style:       cfg.MapStyle,
		},
		mapview.Deps{
			Surface: newConsoleSurface(logger),
			Service: client,
			Cards:   &consoleCards{client: client, logger: logger},
			Table:   &consoleTable{logger: logger},
			Pricing: &consolePanel{logger: logger},
			Status: func(msg string) {
				fmt.Println("status:", msg)
			},
			Logger: logger,
		},
	)

	ctrl.Bootstrap()

	ctx := context.Background()

	if *routeID != "" {
		ctrl.LoadRoute(ctx, *routeID)
	}
	if *stopID != "" {
		ctrl.FocusStop(ctx, *stopID)
	}

	if !*poll {
		return
	}

	ctrl.StartPolling(int(cfg.PollInterval.Seconds()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctrl.StopPolling()
	ctrl.Clear()
}
