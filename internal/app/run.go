package app

import (
	"context"
	"fmt"

	"github.com/vk/dinersim/internal/config"
	"github.com/vk/dinersim/internal/ctxlog"
	"github.com/vk/dinersim/internal/dining"
	"github.com/vk/dinersim/internal/hostinfo"
	"github.com/vk/dinersim/internal/monitor"
	"github.com/vk/dinersim/internal/report"
	"github.com/zclconf/go-cty/cty"
)

// Run executes one full simulation: detect the host, load the table
// configuration, open the table and render the results. Configuration
// problems come back as errors before any philosopher is spawned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	host := hostinfo.Detect()
	a.logger.Info("Host detected.", "hostname", host.Hostname, "ec2Patterned", host.EC2Patterned)

	cfg, err := config.Load(ctx, a.config.ConfigPath, hostVariables(host))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	table, err := dining.NewTable(cfg)
	if err != nil {
		return err
	}

	if a.config.MonitorPort > 0 {
		mon := monitor.NewServer(a.config.MonitorPort, table)
		if err := mon.Start(ctx); err != nil {
			return fmt.Errorf("failed to start monitor server: %w", err)
		}
		defer func() {
			if err := mon.Shutdown(ctx); err != nil {
				a.logger.Error("Monitor server shutdown failed.", "error", err)
			}
		}()
	}

	if err := report.Banner(a.outW, cfg); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Info("🚀 Starting simulation.")
	results := table.Run(ctx)
	a.logger.Info("🏁 Simulation finished.")

	if err := report.Render(a.outW, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// hostVariables exposes the detected host to configuration expressions, so a
// file can say `philosophers = ec2 ? 10 : 5`.
func hostVariables(host hostinfo.Info) map[string]cty.Value {
	return map[string]cty.Value{
		"hostname": cty.StringVal(host.Hostname),
		"ec2":      cty.BoolVal(host.EC2Patterned),
	}
}
