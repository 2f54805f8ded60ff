package main

import (
	"context"
	"os/signal"
	"syscall"

	"dummy-data/internal/app/registry"
	"dummy-data/internal/app/screen"
	"dummy-data/internal/metrics"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func runTUI(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, flags, true)
	if err != nil {
		return err
	}
	defer a.close()

	if addr := a.cfg.Metrics.Addr; addr != "" {
		srv := metrics.NewServer(addr, a.metrics)
		go func() {
			if err := srv.Run(ctx); err != nil {
				a.logger.LogError("metrics server stopped", err, zap.String("addr", addr))
			}
		}()
	}

	opaque, err := a.shopReference(ctx)
	if err != nil {
		return err
	}

	reg := registry.New()
	if err := screen.Register(reg, screen.Deps{
		Service: a.service,
		Options: screen.Options{
			Context:      ctx,
			ShopOpaqueID: opaque,
			ToastTimeout: a.cfg.Screen.ToastTimeout,
			Logger:       a.logger,
		},
	}); err != nil {
		return err
	}
	component, err := reg.Lookup(screen.RoutePath)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(component, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
