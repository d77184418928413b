package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/music-manager/internal/platform"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the downloader in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, versionString())
		path, err := platform.ResolveExecutable(conf.Downloader)
		if err != nil {
			fmt.Fprintf(out, "downloader: %s (not found)\n", conf.Downloader)
			return
		}
		fmt.Fprintf(out, "downloader: %s\n", path)
	},
}
