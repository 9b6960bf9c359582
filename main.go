package main

import "github.com/ytget/aprit/cmd"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "1.0.0"

func main() {
	cmd.Execute(version)
}
