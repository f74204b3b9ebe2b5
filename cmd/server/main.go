package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/automation"
	"github.com/dcherrera/tauri-plugin-automation/internal/capture"
	"github.com/dcherrera/tauri-plugin-automation/internal/config"
	"github.com/dcherrera/tauri-plugin-automation/internal/logging"
	"github.com/dcherrera/tauri-plugin-automation/internal/server"
	"github.com/dcherrera/tauri-plugin-automation/internal/transport"
	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
	"github.com/dcherrera/tauri-plugin-automation/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	doc, err := webview.NewDocument("", logger.Logger)
	if err != nil {
		logger.Fatal("webview document", zap.Error(err))
	}

	// Host side of the capture channel: install the delivery binding before
	// the capability bridge probes, so the first probe wins.
	mailbox := capture.NewMailbox()
	doc.Host().Bind(transport.BindingModern, mailbox.HostFunc())

	hub := ws.NewHub(logger.Logger)

	svc, err := automation.NewService(doc, automation.Options{
		Logger:         logger.Logger,
		ViewportWidth:  cfg.Capture.ViewportWidth,
		ViewportHeight: cfg.Capture.ViewportHeight,
		Notify: func(command string, res *automation.Result) {
			ev := ws.Event{Type: "command", Command: command, Success: res.Success}
			if res.Error != nil {
				ev.Error = res.Error.Message
			}
			hub.Broadcast(ev)
		},
	})
	if err != nil {
		logger.Fatal("automation service", zap.Error(err))
	}
	if err := automation.Install(svc); err != nil {
		logger.Fatal("install facade", zap.Error(err))
	}

	srv := server.NewServer(svc, mailbox, hub, cfg, logger.Logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("listener", zap.Error(err))
	}
}
