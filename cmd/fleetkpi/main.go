// Command fleetkpi computes and presents fleet KPIs from Parquet datasets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/fleetkpi/internal/cli"
	"github.com/rshade/fleetkpi/pkg/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes the root command with args.
func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(displayVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// displayVersion returns the normalized semantic version, or the raw build
// string when it is not a valid semver.
func displayVersion() string {
	v, err := version.Parse()
	if err != nil {
		return version.GetVersion()
	}
	return v.String()
}
