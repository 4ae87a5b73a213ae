// Embed prints the HTML snippet (or a YAML summary) for a config so the
// field can be dropped into a page.
//
// Usage: go run ./cmd/embed -config my.yaml -copy
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.design/x/clipboard"

	"github.com/pthm-cable/gradient/config"
	"github.com/pthm-cable/gradient/field"
	"github.com/pthm-cable/gradient/snippet"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	colors := flag.String("colors", "", "Override palette, comma separated (e.g. \"#ff6b6b,rgb(95,39,205)\")")
	noise := flag.String("noise", "", "Override grain: on or off")
	asYAML := flag.Bool("yaml", false, "Print the parameter summary as YAML instead of HTML")
	copyOut := flag.Bool("copy", false, "Also copy the output to the system clipboard")
	hold := flag.Duration("hold", 30*time.Second, "With -copy: how long to keep serving the clipboard (X11 owners must stay alive)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	params := cfg.FieldParams()

	if *colors != "" {
		palette, err := config.SplitPalette(*colors)
		if err == nil && len(palette) > field.MaxStops {
			err = config.ErrPaletteTooLarge
		}
		if err != nil {
			slog.Error("invalid colors", "error", err)
			os.Exit(1)
		}
		params.Palette = palette
		for len(params.Bands) < len(palette) {
			params.Bands = append(params.Bands, field.DefaultBands()[len(params.Bands)])
		}
	}
	switch *noise {
	case "":
	case "on":
		params.Post.GrainEnabled = true
	case "off":
		params.Post.GrainEnabled = false
	default:
		slog.Error("noise must be on or off", "value", *noise)
		os.Exit(1)
	}

	var out string
	if *asYAML {
		data, err := snippet.YAML(&params)
		if err != nil {
			slog.Error("failed to render summary", "error", err)
			os.Exit(1)
		}
		out = string(data)
	} else {
		out = snippet.HTML(&params, snippet.Options{
			ScriptURL:   cfg.Embed.ScriptURL,
			ContainerID: cfg.Embed.ContainerID,
		})
	}
	fmt.Println(out)

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			slog.Error("clipboard unavailable", "error", err)
			os.Exit(1)
		}
		changed := clipboard.Write(clipboard.FmtText, []byte(out))
		slog.Info("copied to clipboard, holding until pasted over or timeout",
			"bytes", len(out),
			"hold", *hold,
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if holdClipboard(ctx, changed, *hold) {
			slog.Info("clipboard taken over by another owner")
		} else {
			slog.Info("stopped serving clipboard")
		}
	}
}

// holdClipboard keeps the process alive while it owns the clipboard. It
// returns true once changed fires, false on timeout or cancellation.
func holdClipboard(ctx context.Context, changed <-chan struct{}, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-changed:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}
