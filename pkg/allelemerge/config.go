// 14 Oct 2026

package allelemerge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoGenes     = errors.New("no genes to merge")
	ErrMissingFile = errors.New("gene needs both a genomic and a coding file")
)

// GeneFiles says where one gene comes from and where it goes.
type GeneFiles struct {
	Name    string `yaml:"name"`
	Genomic string `yaml:"genomic"`
	Coding  string `yaml:"coding"`
	Output  string `yaml:"output,omitempty"`
	Report  string `yaml:"report,omitempty"`
}

// Config is what we read from the yaml file, after command line flags
// have been applied.
type Config struct {
	Threads int         `yaml:"threads,omitempty"`
	Strict  bool        `yaml:"strict,omitempty"`
	Partial bool        `yaml:"partial,omitempty"`
	Genes   []GeneFiles `yaml:"genes"`
}

// ReadConfig reads a yaml file. Unknown keys are an error, since they are
// usually spelling mistakes.
func ReadConfig(fname string) (*Config, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	var cfg Config
	dec := yaml.NewDecoder(fp)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	return &cfg, nil
}

// baseName is a file name without directory or extension.
func baseName(fname string) string {
	b := filepath.Base(fname)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// check fills in gene names and makes sure every gene has its inputs.
func (cfg *Config) check() error {
	if len(cfg.Genes) == 0 {
		return ErrNoGenes
	}
	for i := range cfg.Genes {
		g := &cfg.Genes[i]
		if g.Genomic == "" || g.Coding == "" {
			return fmt.Errorf("%w: gene %d (%s)", ErrMissingFile, i, g.Name)
		}
		if g.Name == "" {
			g.Name = baseName(g.Genomic)
		}
	}
	return nil
}

// setup puts together the config file, if there is one, and the flags.
// A gene given by flags is added to those from the file. A flag can
// switch strict or partial on, but not off.
func setup(flags *CmdFlag, outfile string) (*Config, error) {
	cfg := &Config{}
	if flags.Config != "" {
		var err error
		if cfg, err = ReadConfig(flags.Config); err != nil {
			return nil, err
		}
	}
	if flags.Genomic != "" || flags.Coding != "" {
		cfg.Genes = append(cfg.Genes, GeneFiles{
			Name:    flags.Name,
			Genomic: flags.Genomic,
			Coding:  flags.Coding,
			Output:  outfile,
			Report:  flags.Report,
		})
	}
	if flags.Threads > 0 {
		cfg.Threads = flags.Threads
	}
	cfg.Strict = cfg.Strict || flags.Strict
	cfg.Partial = cfg.Partial || flags.Partial
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}
