package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	auditCommandNameConstant          = "audit-record"
	auditPathFlagConstant             = "--path"
	auditCommandTimeout               = 60 * time.Second
	auditLogGroupAssignmentConstant   = "LOG_GROUP_NAME=compliance-audit"
	auditMissingReportSnippetConstant = "Missing required files:"
	auditLogGroupErrorSnippetConstant = "log group name must be provided"
	auditPlaceholderContentConstant   = "placeholder"
)

func TestAuditRecordCommandSkipsRecordingWhenCheckFails(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()

	environment := []string{
		fmt.Sprintf(configurationSearchPathAssignmentTemplate, testInstance.TempDir()),
		auditLogGroupAssignmentConstant,
	}
	arguments := []string{auditCommandNameConstant, auditPathFlagConstant, repositoryDirectory}

	standardOutput, standardError, runError := runRepocheckCommand(testInstance, auditCommandTimeout, environment, arguments)

	requireExitCode(testInstance, runError, 1, standardError)
	require.Contains(testInstance, standardOutput, auditMissingReportSnippetConstant)
}

func TestAuditRecordCommandRequiresLogGroupName(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()
	for _, baselineFile := range []string{"README.md", ".gitignore"} {
		writeError := os.WriteFile(filepath.Join(repositoryDirectory, baselineFile), []byte(auditPlaceholderContentConstant), 0o600)
		require.NoError(testInstance, writeError)
	}

	environment := []string{
		fmt.Sprintf(configurationSearchPathAssignmentTemplate, testInstance.TempDir()),
	}
	arguments := []string{auditCommandNameConstant, auditPathFlagConstant, repositoryDirectory}

	_, standardError, runError := runRepocheckCommand(testInstance, auditCommandTimeout, environment, arguments)

	requireExitCode(testInstance, runError, 1, standardError)
	require.Contains(testInstance, standardError, auditLogGroupErrorSnippetConstant)
}
