package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GitCommit ...
var GitCommit string

// GitTag ...
var GitTag string

// VersionCommand Returns the version of the restappender binary
func VersionCommand() *cobra.Command {
	var createVersionCmd = &cobra.Command{
		Use:   "version",
		Short: "Returns the version of the restappender binary",
		Long:  `Writes the commit hash and the tag (if any) to stdout and exits with 0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return version(cmd.OutOrStdout())
		},
	}
	return createVersionCmd
}

func version(out io.Writer) error {

	gitCommit, gitTag := "<n/a>", "<n/a>"

	if len(GitCommit) > 0 {
		gitCommit = GitCommit
	}

	if len(GitTag) > 0 {
		gitTag = GitTag
	}

	_, err := fmt.Fprintf(out, "restappender-version:\n    commit: \"%s\"\n    tag: \"%s\"\n", gitCommit, gitTag)

	return err
}
