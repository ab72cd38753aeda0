// Command assetctl inspects and loads assets through an assetkit manager.
//
//	assetctl --dir ./game exists sfx/jump.wav
//	assetctl --config assetkit.yaml load --as clip sfx/jump.wav
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
