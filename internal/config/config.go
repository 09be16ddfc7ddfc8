package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dinersim/internal/ctxlog"
	"github.com/vk/dinersim/internal/dining"
	"github.com/zclconf/go-cty/cty"
)

// fileSchema mirrors the attributes of a table configuration file. Every
// attribute is optional at this layer; missing ones surface as zero values
// for the dining package to judge.
type fileSchema struct {
	Philosophers    int      `hcl:"philosophers,optional"`
	DurationSeconds int      `hcl:"duration_seconds,optional"`
	ThinkMs         string   `hcl:"think_ms,optional"`
	EatMs           string   `hcl:"eat_ms,optional"`
	Variant         string   `hcl:"variant,optional"`
	Seed            int64    `hcl:"seed,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

// Load parses and decodes the HCL file at path into a dining.Config. The
// vars map is exposed to attribute expressions as top-level variables; a
// nil map means expressions must be self-contained.
func Load(ctx context.Context, path string, vars map[string]cty.Value) (dining.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading table configuration.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return dining.Config{}, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	var raw fileSchema
	diags = gohcl.DecodeBody(file.Body, &hcl.EvalContext{Variables: vars}, &raw)
	if diags.HasErrors() {
		return dining.Config{}, fmt.Errorf("failed to decode HCL file %s: %s", path, diags.Error())
	}

	cfg := dining.Config{
		Philosophers: raw.Philosophers,
		Duration:     time.Duration(raw.DurationSeconds) * time.Second,
		Variant:      dining.Variant(strings.ToLower(raw.Variant)),
		Seed:         raw.Seed,
	}

	var err error
	if cfg.Think, err = parseRange(raw.ThinkMs); err != nil {
		return dining.Config{}, fmt.Errorf("attribute think_ms in %s: %w", path, err)
	}
	if cfg.Eat, err = parseRange(raw.EatMs); err != nil {
		return dining.Config{}, fmt.Errorf("attribute eat_ms in %s: %w", path, err)
	}

	logger.Debug("Table configuration loaded.",
		"philosophers", cfg.Philosophers,
		"duration", cfg.Duration,
		"variant", cfg.Variant,
	)
	return cfg, nil
}

// parseRange turns a "min-max" range string into an Interval. The empty
// string maps to the zero interval, consistent with the other optional
// attributes.
func parseRange(value string) (dining.Interval, error) {
	if value == "" {
		return dining.Interval{}, nil
	}
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return dining.Interval{}, fmt.Errorf("range %q must look like \"min-max\"", value)
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return dining.Interval{}, fmt.Errorf("range %q has a malformed minimum: %w", value, err)
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return dining.Interval{}, fmt.Errorf("range %q has a malformed maximum: %w", value, err)
	}
	return dining.Interval{Min: min, Max: max}, nil
}
