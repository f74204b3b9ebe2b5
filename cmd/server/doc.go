// Package main is the entry point for the automation bridge server.
//
// The process hosts a headless webview execution context and exposes it to
// external controllers over a loopback HTTP listener:
//
//	Controller (HTTP) → Automation Service → Webview Document
//	                                       → Host Transport (capture delivery)
//
// The server provides:
//   - Command execution against the live document
//   - Two-phase screenshot capture with correlated delivery
//   - WebSocket streaming of command results
//   - Health and Prometheus metrics endpoints
//
// Configuration comes from environment variables with built-in defaults;
// see the config package for the full list.
package main
