package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	allPresentMessageConstant              = "All required files are present."
	missingHeaderMessageConstant           = "Missing required files:"
	forbiddenHeaderMessageConstant         = "Forbidden files present:"
	reportEntryTemplateConstant            = "- %s\n"
	reportLineTemplateConstant             = "%s\n"
	repositoryHeaderTemplateConstant       = "%s:\n"
	complianceFailedMessageConstant        = "repository failed compliance check"
	fileSystemNotConfiguredMessage         = "file system not configured"
	outputWriterNotConfiguredMessage       = "output writer not configured"
	discovererNotConfiguredMessage         = "repository discoverer not configured"
	requiredFileSetEmptyMessageConstant    = "required file set must not be empty"
	repositoryFailureTemplateConstant      = "%s: %w"
	existenceCheckErrorTemplateConstant    = "failed to check %s: %w"
	concurrentRepositoryCheckLimitConstant = 8
)

// ErrComplianceFailed indicates at least one required file is missing or a forbidden file is present.
var ErrComplianceFailed = errors.New(complianceFailedMessageConstant)

// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessage)

// ErrOutputWriterNotConfigured indicates the service was constructed without an output writer.
var ErrOutputWriterNotConfigured = errors.New(outputWriterNotConfiguredMessage)

// ErrDiscovererNotConfigured indicates recursive checking was requested without a discoverer.
var ErrDiscovererNotConfigured = errors.New(discovererNotConfiguredMessage)

// ErrRequiredFileSetEmpty indicates the effective required file set resolved to no entries.
var ErrRequiredFileSetEmpty = errors.New(requiredFileSetEmptyMessageConstant)

// Options configures a single compliance check pass.
type Options struct {
	WorkingDirectory string
	RequiredFiles    RequiredFileSet
	ForbiddenFiles   []string
}

// Service evaluates repository compliance and renders the pass/fail report.
type Service struct {
	fileSystem   FileSystem
	discoverer   RepositoryDiscoverer
	outputWriter io.Writer
}

// NewService constructs a Service using the provided collaborators.
func NewService(fileSystem FileSystem, discoverer RepositoryDiscoverer, outputWriter io.Writer) (*Service, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if outputWriter == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &Service{fileSystem: fileSystem, discoverer: discoverer, outputWriter: outputWriter}, nil
}

// Run evaluates the working directory against the options and writes the report.
//
// The returned error is ErrComplianceFailed when the report lists missing or
// forbidden entries; any other error reports an environmental failure.
func (service *Service) Run(executionContext context.Context, options Options) (CheckResult, error) {
	result, evaluationError := service.Evaluate(executionContext, options)
	if evaluationError != nil {
		return CheckResult{}, evaluationError
	}

	if renderError := service.renderReport(result); renderError != nil {
		return result, renderError
	}

	if !result.Passed() {
		return result, ErrComplianceFailed
	}
	return result, nil
}

// Evaluate computes the presence partition without producing output.
func (service *Service) Evaluate(executionContext context.Context, options Options) (CheckResult, error) {
	requiredFiles := options.RequiredFiles
	if len(requiredFiles) == 0 {
		return CheckResult{}, ErrRequiredFileSetEmpty
	}

	result := CheckResult{}

	for _, requiredFile := range requiredFiles {
		if contextError := executionContext.Err(); contextError != nil {
			return CheckResult{}, contextError
		}

		exists, existenceError := service.fileSystem.FileExists(service.resolvePath(options.WorkingDirectory, requiredFile))
		if existenceError != nil {
			return CheckResult{}, fmt.Errorf(existenceCheckErrorTemplateConstant, requiredFile, existenceError)
		}

		if exists {
			result.Present = append(result.Present, requiredFile)
		} else {
			result.Missing = append(result.Missing, requiredFile)
		}
	}

	for _, forbiddenFile := range options.ForbiddenFiles {
		exists, existenceError := service.fileSystem.FileExists(service.resolvePath(options.WorkingDirectory, forbiddenFile))
		if existenceError != nil {
			return CheckResult{}, fmt.Errorf(existenceCheckErrorTemplateConstant, forbiddenFile, existenceError)
		}
		if exists {
			result.ForbiddenPresent = append(result.ForbiddenPresent, forbiddenFile)
		}
	}

	return result, nil
}

// RunRecursive discovers repositories beneath the roots and evaluates each one.
//
// Per-repository compliance failures are aggregated into the returned error;
// the report for every repository is still rendered in discovery order.
func (service *Service) RunRecursive(executionContext context.Context, roots []string, options Options) ([]RepositoryCheck, error) {
	if service.discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}

	repositories, discoveryError := service.discoverer.DiscoverRepositories(roots)
	if discoveryError != nil {
		return nil, discoveryError
	}

	repositoryChecks := make([]RepositoryCheck, len(repositories))

	evaluationGroup, groupContext := errgroup.WithContext(executionContext)
	evaluationGroup.SetLimit(concurrentRepositoryCheckLimitConstant)

	for repositoryIndex, repositoryPath := range repositories {
		repositoryIndex, repositoryPath := repositoryIndex, repositoryPath
		evaluationGroup.Go(func() error {
			repositoryOptions := options
			repositoryOptions.WorkingDirectory = repositoryPath

			result, evaluationError := service.Evaluate(groupContext, repositoryOptions)
			if evaluationError != nil {
				return fmt.Errorf(repositoryFailureTemplateConstant, repositoryPath, evaluationError)
			}

			repositoryChecks[repositoryIndex] = RepositoryCheck{RepositoryPath: repositoryPath, Result: result}
			return nil
		})
	}

	if waitError := evaluationGroup.Wait(); waitError != nil {
		return nil, waitError
	}

	var aggregatedError error
	for _, repositoryCheck := range repositoryChecks {
		fmt.Fprintf(service.outputWriter, repositoryHeaderTemplateConstant, repositoryCheck.RepositoryPath)
		if renderError := service.renderReport(repositoryCheck.Result); renderError != nil {
			return repositoryChecks, renderError
		}
		if !repositoryCheck.Result.Passed() {
			aggregatedError = multierr.Append(aggregatedError, fmt.Errorf(repositoryFailureTemplateConstant, repositoryCheck.RepositoryPath, ErrComplianceFailed))
		}
	}

	return repositoryChecks, aggregatedError
}

func (service *Service) renderReport(result CheckResult) error {
	if result.Passed() {
		_, writeError := fmt.Fprintf(service.outputWriter, reportLineTemplateConstant, allPresentMessageConstant)
		return writeError
	}

	if len(result.Missing) > 0 {
		if _, writeError := fmt.Fprintf(service.outputWriter, reportLineTemplateConstant, missingHeaderMessageConstant); writeError != nil {
			return writeError
		}
		for _, missingFile := range result.Missing {
			if _, writeError := fmt.Fprintf(service.outputWriter, reportEntryTemplateConstant, missingFile); writeError != nil {
				return writeError
			}
		}
	}

	if len(result.ForbiddenPresent) > 0 {
		if _, writeError := fmt.Fprintf(service.outputWriter, reportLineTemplateConstant, forbiddenHeaderMessageConstant); writeError != nil {
			return writeError
		}
		for _, forbiddenFile := range result.ForbiddenPresent {
			if _, writeError := fmt.Fprintf(service.outputWriter, reportEntryTemplateConstant, forbiddenFile); writeError != nil {
				return writeError
			}
		}
	}

	return nil
}

func (service *Service) resolvePath(workingDirectory string, relativePath string) string {
	if len(workingDirectory) == 0 {
		return relativePath
	}
	return filepath.Join(workingDirectory, relativePath)
}
