// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/decred/ottery"
	"github.com/decred/ottery/internal/cpucap"
	"github.com/decred/ottery/internal/entropy"
	"github.com/decred/ottery/internal/version"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultCount          = 32
	defaultLogLevel       = "info"
	defaultMaxLogFileSize = 10 * 1024 // KiB
	defaultMaxLogFiles    = 3
)

// config defines the configuration options for otterygen.
type config struct {
	ShowVersion bool `short:"V" long:"version" description:"Display version information and exit"`
	ListPRFs    bool `long:"listprfs" description:"List the available PRFs and exit"`

	// Output.
	Count  int64  `short:"n" long:"bytes" description:"Number of random bytes to generate; 0 writes until interrupted"`
	Hex    bool   `short:"x" long:"hex" description:"Write the bytes hex encoded"`
	Output string `short:"o" long:"output" description:"Write to this file instead of stdout"`
	Force  bool   `short:"f" long:"force" description:"Write raw bytes to a terminal and overwrite existing output files"`

	// Generator.
	PRF            string        `long:"prf" description:"PRF to use as name or name/impl (see --listprfs)"`
	URandomDevice  string        `long:"urandom" description:"Path of the random device"`
	DisableSources []string      `long:"disablesource" description:"Disable an entropy source; may be specified multiple times {getrandom, randomdev, cryptorand, rdrand, egd}"`
	EGDAddress     string        `long:"egd" description:"Address of an entropy gathering daemon to mix in"`
	EGDNetwork     string        `long:"egdnet" description:"Network of the entropy gathering daemon {unix, tcp}"`
	EGDTimeout     time.Duration `long:"egdtimeout" description:"Timeout for entropy gathering daemon requests"`
	DisableCPU     []string      `long:"disablecpu" description:"Disable a CPU capability; may be specified multiple times {simd, ssse3, aes, rand}"`
	StirAfter      uint32        `long:"stirafter" description:"Number of PRF blocks produced before stirring in fresh entropy (default is 4 MiB of output)"`
	MLock          bool          `long:"mlock" description:"Lock process memory so generator state is never swapped to disk"`

	// Logging.
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogFile    string `long:"logfile" description:"Also write logs to this file, rotating it as it grows"`
	MaxLogSize int64  `long:"logsize" description:"Maximum size in KiB of the log file before it is rotated"`
	MaxLogs    int    `long:"maxlogs" description:"Maximum number of rotated log files to keep"`
}

// otteryConfig returns the generator configuration described by cfg.
func (cfg *config) otteryConfig() (*ottery.Config, error) {
	var disabled entropy.Flags
	for _, name := range cfg.DisableSources {
		src, ok := entropy.ParseSource(name)
		if !ok {
			return nil, fmt.Errorf("unknown entropy source %q -- supported "+
				"sources %v", name, entropy.SourceNames())
		}
		disabled |= src
	}

	return &ottery.Config{
		PRF:             cfg.PRF,
		URandomDevice:   cfg.URandomDevice,
		DisabledSources: disabled,
		EGDNetwork:      cfg.EGDNetwork,
		EGDAddress:      cfg.EGDAddress,
		EGDTimeout:      cfg.EGDTimeout,
		StirAfter:       cfg.StirAfter,
	}, nil
}

// cpuCapsToDisable returns the CPU capabilities named by cfg.
func (cfg *config) cpuCapsToDisable() (ottery.CPUCaps, error) {
	var caps ottery.CPUCaps
	for _, name := range cfg.DisableCPU {
		c, ok := cpucap.Parse(name)
		if !ok {
			return 0, fmt.Errorf("unknown cpu capability %q -- supported "+
				"capabilities are simd, ssse3, aes and rand", name)
		}
		caps |= c
	}
	return caps, nil
}

// loadConfig parses the command line.  It returns a nil config without error
// when the program should exit successfully without generating output, such
// as after displaying help or version information.
func loadConfig(args []string) (*config, error) {
	cfg := config{
		Count:      defaultCount,
		EGDTimeout: entropy.DefaultEGDTimeout,
		DebugLevel: defaultLogLevel,
		MaxLogSize: defaultMaxLogFileSize,
		MaxLogs:    defaultMaxLogFiles,
	}
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Println(e.Message)
			return nil, nil
		}
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("unexpected arguments %v", rest)
	}

	if cfg.ShowVersion {
		fmt.Printf("otterygen version %s\n", version.String())
		return nil, nil
	}
	if cfg.ListPRFs {
		fmt.Println(strings.Join(ottery.PRFNames(), "\n"))
		return nil, nil
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		return nil, nil
	}
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, err
	}

	if cfg.Count < 0 {
		return nil, fmt.Errorf("the number of bytes may not be negative")
	}
	if cfg.EGDNetwork != "" && cfg.EGDAddress == "" {
		return nil, fmt.Errorf("--egdnet requires --egd")
	}
	if cfg.LogFile != "" {
		if cfg.MaxLogSize <= 0 || cfg.MaxLogs <= 0 {
			return nil, fmt.Errorf("--logsize and --maxlogs must be positive")
		}
		err := initLogRotator(cfg.LogFile, cfg.MaxLogSize, cfg.MaxLogs)
		if err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// openOutput returns the file receiving the generated bytes and a function
// that closes it.  Standard output is left open.
func openOutput(cfg *config) (*os.File, func() error, error) {
	if cfg.Output == "" || cfg.Output == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if cfg.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(cfg.Output, flag, 0600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
