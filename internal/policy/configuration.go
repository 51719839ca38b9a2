package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	policyLoadErrorTemplateConstant        = "failed to load policy: %w"
	policyParseErrorTemplateConstant       = "failed to parse policy: %w"
	policyPathRequiredMessageConstant      = "policy path must be provided"
	policyEmptyRequiredMessageConstant     = "policy must define at least one required file"
	policyDuplicateEntryTemplateConstant   = "policy lists %s more than once"
	policyAbsoluteEntryTemplateConstant    = "policy entry %s must be a relative path"
	policyConflictingEntryTemplateConstant = "policy lists %s as both required and forbidden"
)

// Policy describes the file requirements a repository must satisfy.
type Policy struct {
	Required  []string `yaml:"required"`
	Forbidden []string `yaml:"forbidden"`
}

// Default returns the baseline policy applied when no policy file is supplied.
func Default() Policy {
	return Policy{
		Required: []string{"README.md", ".gitignore"},
	}
}

// Load reads the policy definition from disk and performs basic validation.
func Load(filePath string) (Policy, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Policy{}, errors.New(policyPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Policy{}, fmt.Errorf(policyLoadErrorTemplateConstant, readError)
	}

	var loadedPolicy Policy
	if unmarshalError := yaml.Unmarshal(contentBytes, &loadedPolicy); unmarshalError != nil {
		return Policy{}, fmt.Errorf(policyParseErrorTemplateConstant, unmarshalError)
	}

	loadedPolicy = loadedPolicy.sanitize()

	if validationError := loadedPolicy.Validate(); validationError != nil {
		return Policy{}, validationError
	}

	return loadedPolicy, nil
}

// Validate confirms the policy names at least one required file and contains no duplicates or conflicts.
func (loadedPolicy Policy) Validate() error {
	if len(loadedPolicy.Required) == 0 {
		return errors.New(policyEmptyRequiredMessageConstant)
	}

	seenRequired := make(map[string]struct{}, len(loadedPolicy.Required))
	for _, requiredEntry := range loadedPolicy.Required {
		if validationError := validateEntry(requiredEntry); validationError != nil {
			return validationError
		}
		if _, duplicated := seenRequired[requiredEntry]; duplicated {
			return fmt.Errorf(policyDuplicateEntryTemplateConstant, requiredEntry)
		}
		seenRequired[requiredEntry] = struct{}{}
	}

	seenForbidden := make(map[string]struct{}, len(loadedPolicy.Forbidden))
	for _, forbiddenEntry := range loadedPolicy.Forbidden {
		if validationError := validateEntry(forbiddenEntry); validationError != nil {
			return validationError
		}
		if _, duplicated := seenForbidden[forbiddenEntry]; duplicated {
			return fmt.Errorf(policyDuplicateEntryTemplateConstant, forbiddenEntry)
		}
		if _, conflicting := seenRequired[forbiddenEntry]; conflicting {
			return fmt.Errorf(policyConflictingEntryTemplateConstant, forbiddenEntry)
		}
		seenForbidden[forbiddenEntry] = struct{}{}
	}

	return nil
}

func validateEntry(entry string) error {
	if filepath.IsAbs(entry) {
		return fmt.Errorf(policyAbsoluteEntryTemplateConstant, entry)
	}
	return nil
}

func (loadedPolicy Policy) sanitize() Policy {
	sanitized := Policy{}
	for _, requiredEntry := range loadedPolicy.Required {
		trimmed := strings.TrimSpace(requiredEntry)
		if len(trimmed) == 0 {
			continue
		}
		sanitized.Required = append(sanitized.Required, trimmed)
	}
	for _, forbiddenEntry := range loadedPolicy.Forbidden {
		trimmed := strings.TrimSpace(forbiddenEntry)
		if len(trimmed) == 0 {
			continue
		}
		sanitized.Forbidden = append(sanitized.Forbidden, trimmed)
	}
	return sanitized
}
