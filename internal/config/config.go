// Package config loads the consultq batch configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paljsingh/consultqueue"
	"github.com/paljsingh/consultqueue/internal/blob"
	"github.com/paljsingh/consultqueue/internal/blob/core"
	"github.com/paljsingh/consultqueue/internal/blob/s3"
	"github.com/paljsingh/consultqueue/internal/clinic"
)

const (
	DefaultRosterFile   = "inputPS5a.txt"
	DefaultCommandsFile = "inputPS5b.txt"
	DefaultReportKey    = clinic.DefaultReportKey
	DefaultFSRoot       = "./reports"
)

type S3 struct {
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

type Blob struct {
	Driver core.Driver `json:"driver,omitempty"`
	FSRoot string      `json:"fsRoot,omitempty"`
	S3     S3          `json:"s3"`
}

type Config struct {
	RosterFile   string `json:"roster"`
	CommandsFile string `json:"commands"`
	ReportKey    string `json:"reportKey,omitempty"`

	Blob Blob `json:"blob"`

	MetricsAddr string `json:"metricsListen,omitempty"`

	IDBaseline      int64 `json:"idBaseline,omitempty"`
	IDWidth         int   `json:"idWidth,omitempty"`
	InvariantChecks bool  `json:"invariantChecks,omitempty"`
	Color           bool  `json:"color,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// ParseConfig reads configFile (skipped when empty), fills defaults and then
// applies CONSULTQ_* environment overrides.
func ParseConfig(configFile string) (cfg Config, err error) {
	if configFile != "" {
		var file *os.File
		file, err = os.Open(configFile)
		if err != nil {
			return
		}
		defer file.Close()

		err = json.NewDecoder(file).Decode(&cfg)
		if err != nil {
			return
		}
	}
	cfg.applyDefaults()
	err = cfg.applyEnv(os.LookupEnv)
	return
}

func (c *Config) applyDefaults() {
	if c.RosterFile == "" {
		c.RosterFile = DefaultRosterFile
	}
	if c.CommandsFile == "" {
		c.CommandsFile = DefaultCommandsFile
	}
	if c.ReportKey == "" {
		c.ReportKey = DefaultReportKey
	}
	if c.Blob.Driver == "" {
		c.Blob.Driver = core.DriverFilesystem
	}
	if c.Blob.FSRoot == "" {
		c.Blob.FSRoot = DefaultFSRoot
	}
	if c.IDBaseline == 0 {
		c.IDBaseline = consultqueue.DefaultIDBaseline
	}
	if c.IDWidth == 0 {
		c.IDWidth = consultqueue.DefaultIDWidth
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CONSULTQ_BLOB_DRIVER"); ok && v != "" {
		c.Blob.Driver = core.Driver(v)
	}
	if v, ok := lookup("CONSULTQ_BLOB_FS_ROOT"); ok && v != "" {
		c.Blob.FSRoot = v
	}
	if v, ok := lookup("CONSULTQ_S3_BUCKET"); ok && v != "" {
		c.Blob.S3.Bucket = v
	}
	if v, ok := lookup("CONSULTQ_S3_REGION"); ok && v != "" {
		c.Blob.S3.Region = v
	}
	if v, ok := lookup("CONSULTQ_S3_ENDPOINT"); ok && v != "" {
		c.Blob.S3.Endpoint = v
	}
	if v, ok := lookup("CONSULTQ_S3_PATH_STYLE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CONSULTQ_S3_PATH_STYLE: %w", err)
		}
		c.Blob.S3.PathStyle = b
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Blob.Driver {
	case core.DriverFilesystem, core.DriverMemory:
	case core.DriverS3:
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("blob driver s3 requires a bucket")
		}
	default:
		return fmt.Errorf("unknown blob driver %s", c.Blob.Driver)
	}
	if c.IDWidth <= 0 {
		return fmt.Errorf("idWidth must be positive, got %d", c.IDWidth)
	}
	if c.ReportKey == "" {
		return fmt.Errorf("reportKey required")
	}
	return nil
}

// BlobOptions converts the blob section for blob.Open. S3 credentials come
// from the default AWS chain.
func (c Config) BlobOptions() blob.Options {
	return blob.Options{
		Driver: c.Blob.Driver,
		FSRoot: c.Blob.FSRoot,
		S3: s3.Config{
			Bucket:    c.Blob.S3.Bucket,
			Region:    c.Blob.S3.Region,
			Endpoint:  c.Blob.S3.Endpoint,
			PathStyle: c.Blob.S3.PathStyle,
		},
	}
}

// QueueOptions returns the id and invariant options for the queue.
func (c Config) QueueOptions() []consultqueue.Option {
	opts := []consultqueue.Option{
		consultqueue.WithIDBaseline(c.IDBaseline),
		consultqueue.WithIDWidth(c.IDWidth),
	}
	if c.InvariantChecks {
		opts = append(opts, consultqueue.WithInvariantChecks(true))
	}
	return opts
}
