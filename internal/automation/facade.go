package automation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/capture"
	"github.com/dcherrera/tauri-plugin-automation/internal/transport"
	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// State is the facade lifecycle. There is no teardown state; the service
// lives as long as the execution context.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Options tune service construction.
type Options struct {
	Logger         *zap.Logger
	ViewportWidth  int
	ViewportHeight int
	// Notify, when set, is called after every dispatch with the command
	// name and its result. Used by the event stream.
	Notify func(command string, result *Result)
	// Sleep overrides settle-delay sleeps in tests.
	Sleep func(time.Duration)
}

// Service is the automation facade: the single externally reachable object
// combining the command registry, the capability bridge and the capture
// channel. Construction runs the full initialization, including capability
// resolution, so no caller can observe a partially initialized service.
type Service struct {
	runMu sync.Mutex
	state atomic.Int32

	doc      *webview.Document
	registry *Registry
	handle   transport.Handle
	capture  *capture.Channel
	notify   func(string, *Result)
	log      *zap.Logger

	lastMu sync.RWMutex
	last   *Result
}

// NewService initializes the facade over doc. A missing host transport
// degrades the screenshot path but is not a startup error: the service
// still reaches Ready and DOM-only commands stay usable.
func NewService(doc *webview.Document, opts Options) (*Service, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		doc:    doc,
		notify: opts.Notify,
		log:    logger,
	}
	s.state.Store(int32(StateInitializing))

	runtime, err := webview.NewRuntime(doc, logger)
	if err != nil {
		return nil, err
	}

	bridge := transport.NewBridge(doc.Host(), logger)
	s.handle = bridge.Resolve()

	width, height := opts.ViewportWidth, opts.ViewportHeight
	if width <= 0 {
		width = webview.DefaultViewportWidth
	}
	if height <= 0 {
		height = webview.DefaultViewportHeight
	}
	s.capture = capture.NewChannel(doc, s.handle, width, height, logger)

	s.registry = NewRegistry(Deps{
		Doc:      doc,
		Resolver: NewResolver(doc),
		Sim:      NewSimulator(doc),
		Runtime:  runtime,
		Sleep:    opts.Sleep,
	})

	s.state.Store(int32(StateReady))
	logger.Info("automation service ready",
		zap.String("transport", string(s.handle.Source)),
		zap.Int("commands", len(s.registry.Names())))
	return s, nil
}

// State returns the lifecycle state.
func (s *Service) State() State {
	return State(s.state.Load())
}

// TransportSource reports which probe the capability bridge settled on.
func (s *Service) TransportSource() transport.Source {
	return s.handle.Source
}

// Commands returns the sorted command catalog.
func (s *Service) Commands() []string {
	return s.registry.Names()
}

// Execute dispatches one command. Commands are serialized: at most one
// executes at a time within the execution context.
func (s *Service) Execute(ctx context.Context, command string, args map[string]any) *Result {
	if s.State() != StateReady {
		return Failure(KindInternal, "automation service is %s, not ready", s.State())
	}
	s.runMu.Lock()
	res := s.registry.Dispatch(ctx, command, args)
	s.runMu.Unlock()

	s.setLastResult(res)
	if res.Error != nil {
		s.log.Warn("command failed",
			zap.String("command", command),
			zap.String("kind", string(res.Error.Kind)),
			zap.String("error", res.Error.Message))
	} else {
		s.log.Debug("command executed", zap.String("command", command))
	}
	if s.notify != nil {
		s.notify(command, res)
	}
	return res
}

// CaptureAndSend runs the two-phase screenshot flow and reports the
// delivery outcome. A missing transport surfaces as TransportUnavailable,
// anything else on the capture path as CaptureFailed; it never hangs.
func (s *Service) CaptureAndSend(ctx context.Context) *Result {
	if s.State() != StateReady {
		return Failure(KindInternal, "automation service is %s, not ready", s.State())
	}
	s.runMu.Lock()
	d := s.capture.CaptureAndSend(ctx)
	s.runMu.Unlock()

	var res *Result
	switch {
	case d.State == capture.StateDelivered:
		res = Success(map[string]any{"token": d.Token})
	case errors.Is(d.Err, transport.ErrUnavailable):
		res = Failure(KindTransportUnavailable, "screenshot delivery failed: %v", d.Err)
	default:
		res = Failure(KindCaptureFailed, "screenshot capture failed: %v", d.Err)
	}
	s.setLastResult(res)
	if s.notify != nil {
		s.notify("screenshot", res)
	}
	return res
}

func (s *Service) setLastResult(res *Result) {
	s.lastMu.Lock()
	s.last = res
	s.lastMu.Unlock()
}

// LastResult returns the most recent execution result. Hosts that inject
// evaluation without a promise bridge can poll this instead of consuming a
// return value; the bundled HTTP listener does not need it.
func (s *Service) LastResult() *Result {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	return s.last
}

// Process-wide singleton with an explicit publish step. The service is
// installed only after NewService completes, so external callers never see
// a partially initialized facade.
var (
	installMu sync.Mutex
	installed *Service
)

// Install publishes svc as the process-wide automation service. Installing
// twice is a programming error.
func Install(svc *Service) error {
	installMu.Lock()
	defer installMu.Unlock()
	if installed != nil {
		return errors.New("automation service already installed")
	}
	installed = svc
	return nil
}

// Current returns the installed service, if any.
func Current() (*Service, bool) {
	installMu.Lock()
	defer installMu.Unlock()
	return installed, installed != nil
}
