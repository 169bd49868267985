// Package config resolves the source directory from the command line and the
// optional publishing target from the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BadarSaghir/img_collage/internal/publish"
)

// DefaultRegion is used when COLLAGE_S3_REGION is unset.
const DefaultRegion = "us-east-1"

// Environment variables read by Load.
const (
	EnvBucket    = "COLLAGE_S3_BUCKET"
	EnvPrefix    = "COLLAGE_S3_PREFIX"
	EnvEndpoint  = "COLLAGE_S3_ENDPOINT"
	EnvRegion    = "COLLAGE_S3_REGION"
	EnvAccessKey = "COLLAGE_S3_ACCESS_KEY"
	EnvSecretKey = "COLLAGE_S3_SECRET_KEY"
)

// Config is the resolved run configuration.
type Config struct {
	// Dir is the absolute source directory.
	Dir     string
	Publish publish.Config
}

// Load parses args (without the program name). getenv is usually os.Getenv.
// Usage text and flag errors go to usage. Returns flag.ErrHelp for -h.
func Load(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	fs := flag.NewFlagSet("collage", flag.ContinueOnError)
	fs.SetOutput(usage)
	inputDir := fs.String("input_dir", "", "Directory containing the .png/.jpg/.jpeg images (default: first argument or .)")
	fs.Usage = func() {
		fmt.Fprintf(usage, "Usage: collage [-input_dir DIR | DIR]\n\n")
		fmt.Fprintf(usage, "Writes DIR/collage.png. Set %s to also upload it.\n\n", EnvBucket)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	dir := *inputDir
	switch {
	case fs.NArg() > 1:
		return Config{}, fmt.Errorf("expected at most one directory, got %d", fs.NArg())
	case fs.NArg() == 1 && dir != "":
		return Config{}, fmt.Errorf("directory given twice: -input_dir %q and %q", dir, fs.Arg(0))
	case fs.NArg() == 1:
		dir = fs.Arg(0)
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve %q: %w", dir, err)
	}

	pub, err := loadPublish(getenv)
	if err != nil {
		return Config{}, err
	}
	return Config{Dir: abs, Publish: pub}, nil
}

func loadPublish(getenv func(string) string) (publish.Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	pc := publish.Config{
		Bucket:    get(EnvBucket, ""),
		Prefix:    strings.Trim(get(EnvPrefix, ""), "/"),
		Endpoint:  get(EnvEndpoint, ""),
		Region:    get(EnvRegion, DefaultRegion),
		AccessKey: get(EnvAccessKey, ""),
		SecretKey: get(EnvSecretKey, ""),
	}
	if (pc.AccessKey == "") != (pc.SecretKey == "") {
		return publish.Config{}, fmt.Errorf("%s and %s must be set together", EnvAccessKey, EnvSecretKey)
	}
	if !pc.Enabled() && (pc.Endpoint != "" || pc.AccessKey != "" || pc.Prefix != "") {
		return publish.Config{}, fmt.Errorf("S3 settings given but %s is empty", EnvBucket)
	}
	return pc, nil
}
