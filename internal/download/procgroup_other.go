//go:build !unix

package download

import "os/exec"

func startInGroup(*exec.Cmd) {}

// killGroup kills the downloader only, there are no process groups here
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
