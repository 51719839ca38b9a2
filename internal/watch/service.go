package watch

import (
	"context"
	"errors"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/repocheck/internal/check"
)

const (
	defaultDebounceIntervalConstant    = 500 * time.Millisecond
	watchStartedLogMessageConstant     = "watch started"
	changeDetectedLogMessageConstant   = "filesystem change detected"
	watcherFailureLogMessageConstant   = "filesystem watcher reported an error"
	complianceFailedLogMessageConstant = "compliance check failed"
	logFieldDirectoryConstant          = "directory"
	logFieldEventConstant              = "event"
)

// ErrCheckRunnerNotConfigured indicates the watch service was constructed without a compliance runner.
var ErrCheckRunnerNotConfigured = errors.New("watch service requires a compliance runner")

// ErrDirectoryRequired indicates the watch options omit the directory to observe.
var ErrDirectoryRequired = errors.New("watch service requires a directory to observe")

// CheckRunner executes a single compliance pass and renders its report.
type CheckRunner interface {
	Run(executionContext context.Context, options check.Options) (check.CheckResult, error)
}

// Options configures a watch session.
type Options struct {
	Directory        string
	RequiredFiles    check.RequiredFileSet
	ForbiddenFiles   []string
	DebounceInterval time.Duration
}

// Service observes a directory and re-runs the compliance check after changes settle.
type Service struct {
	logger      *zap.Logger
	checkRunner CheckRunner
}

// NewService constructs a Service using the provided collaborators.
func NewService(logger *zap.Logger, checkRunner CheckRunner) (*Service, error) {
	if checkRunner == nil {
		return nil, ErrCheckRunnerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, checkRunner: checkRunner}, nil
}

// Run performs an initial compliance pass, then repeats the pass each time the
// observed directory changes and the debounce interval elapses without further
// events. Compliance failures are reported and watching continues; the method
// returns nil once the context is cancelled.
func (service *Service) Run(executionContext context.Context, options Options) error {
	if len(options.Directory) == 0 {
		return ErrDirectoryRequired
	}

	debounceInterval := options.DebounceInterval
	if debounceInterval <= 0 {
		debounceInterval = defaultDebounceIntervalConstant
	}

	watcher, watcherError := fsnotify.NewWatcher()
	if watcherError != nil {
		return watcherError
	}
	defer func() {
		_ = watcher.Close()
	}()

	if addError := watcher.Add(options.Directory); addError != nil {
		return addError
	}

	service.logger.Info(watchStartedLogMessageConstant, zap.String(logFieldDirectoryConstant, options.Directory))

	if passError := service.runPass(executionContext, options); passError != nil {
		return passError
	}

	debounceTimer := time.NewTimer(debounceInterval)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	defer debounceTimer.Stop()

	for {
		select {
		case <-executionContext.Done():
			return nil

		case event, channelOpen := <-watcher.Events:
			if !channelOpen {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			service.logger.Debug(changeDetectedLogMessageConstant, zap.String(logFieldEventConstant, event.String()))
			resetDebounceTimer(debounceTimer, debounceInterval)

		case watcherFailure, channelOpen := <-watcher.Errors:
			if !channelOpen {
				return nil
			}
			service.logger.Warn(watcherFailureLogMessageConstant, zap.Error(watcherFailure))

		case <-debounceTimer.C:
			if passError := service.runPass(executionContext, options); passError != nil {
				return passError
			}
		}
	}
}

// runPass executes one compliance check. A compliance failure has already been
// rendered by the runner, so it is logged and watching continues; any other
// error terminates the session.
func (service *Service) runPass(executionContext context.Context, options Options) error {
	_, runError := service.checkRunner.Run(executionContext, check.Options{
		WorkingDirectory: options.Directory,
		RequiredFiles:    options.RequiredFiles,
		ForbiddenFiles:   options.ForbiddenFiles,
	})
	if runError == nil {
		return nil
	}
	if errors.Is(runError, check.ErrComplianceFailed) {
		service.logger.Info(complianceFailedLogMessageConstant, zap.String(logFieldDirectoryConstant, options.Directory))
		return nil
	}
	if errors.Is(runError, context.Canceled) {
		return nil
	}
	return runError
}

func relevantEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func resetDebounceTimer(debounceTimer *time.Timer, debounceInterval time.Duration) {
	if !debounceTimer.Stop() {
		select {
		case <-debounceTimer.C:
		default:
		}
	}
	debounceTimer.Reset(debounceInterval)
}
