package main

import "github.com/ytget/music-manager/cmd"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cmd.Execute(version)
}
