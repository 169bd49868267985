// Command collage tiles the .png/.jpg/.jpeg images of one directory into a
// near-square grid and writes the result to <dir>/collage.png.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BadarSaghir/img_collage/internal/collage"
	"github.com/BadarSaghir/img_collage/internal/config"
	"github.com/BadarSaghir/img_collage/internal/publish"
)

// uploader is the part of *publish.Publisher used after a successful build.
type uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Replaced in tests.
var newUploader = func(ctx context.Context, cfg publish.Config) (uploader, error) {
	return publish.New(ctx, cfg)
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "collage: ", 0)

	cfg, err := config.Load(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Printf("invalid arguments: %v", err)
		return 2
	}

	res, err := collage.Build(cfg.Dir)
	if err != nil {
		logger.Printf("error creating collage: %v", err)
		return 1
	}
	fmt.Fprintf(stdout, "Collage saved at: %s\n", res.Path)

	if !cfg.Publish.Enabled() {
		return 0
	}
	ctx := context.Background()
	up, err := newUploader(ctx, cfg.Publish)
	if err != nil {
		logger.Printf("error configuring upload: %v", err)
		return 1
	}
	key, err := up.Upload(ctx, res.Path)
	if err != nil {
		logger.Printf("error uploading collage: %v", err)
		return 1
	}
	logger.Printf("uploaded s3://%s/%s", cfg.Publish.Bucket, key)
	return 0
}
