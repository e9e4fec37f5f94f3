package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-bcrypt/config"
	"github.com/hasbyte1/go-bcrypt/hashing"
	"github.com/hasbyte1/go-bcrypt/internal/logging"
)

// Supported subcommands:
// - hash:   hash the password read from stdin
// - verify: check the password read from stdin against -hash
// - info:   print the parameters embedded in -hash

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	usageMessage = `usage: bcryptctl <command> [flags]

commands:
  hash    [-config file] [-cost N] [-id 2a|2x|2y]   hash the password read from stdin
  verify  [-config file] -hash HASH                 check the password read from stdin
  info    [-config file] -hash HASH                 print identifier and cost of HASH

Settings are read from -config (YAML) and BCRYPTCTL_* environment variables.
`
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usageMessage)
		return exitUsage
	}

	switch args[0] {
	case "hash":
		return runHash(args[1:], stdin, stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdin, stdout, stderr)
	case "info":
		return runInfo(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usageMessage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n%s", args[0], usageMessage)
		return exitUsage
	}
}

func runHash(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("hash", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	configPath := cmd.String("config", "", "YAML config file")
	cost := cmd.Int("cost", 0, "Work factor (4-31); out-of-range values use the configured cost")
	id := cmd.String("id", "", "Identifier for the new hash (default: configured identifier)")
	if err := cmd.Parse(args); err != nil {
		return exitUsage
	}

	codec, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	password, err := readPassword(stdin)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read password")
		return exitFailure
	}

	identifier := codec.Identifier()
	if *id != "" {
		identifier = hashing.Identifier(*id)
	}

	hash, err := codec.Hash(password, *cost, identifier)
	if err != nil {
		logger.Error().Err(err).Msg("failed to hash password")
		return exitFailure
	}

	fmt.Fprintln(stdout, hash)
	return exitOK
}

func runVerify(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	configPath := cmd.String("config", "", "YAML config file")
	hash := cmd.String("hash", "", "Stored hash to verify against")
	if err := cmd.Parse(args); err != nil {
		return exitUsage
	}
	if *hash == "" {
		fmt.Fprintln(stderr, "Error: -hash is required")
		return exitUsage
	}

	codec, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	password, err := readPassword(stdin)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read password")
		return exitFailure
	}

	if !codec.Verify(password, *hash) {
		fmt.Fprintln(stdout, "invalid")
		return exitFailure
	}
	fmt.Fprintln(stdout, "valid")
	return exitOK
}

func runInfo(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("info", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	configPath := cmd.String("config", "", "YAML config file")
	hash := cmd.String("hash", "", "Stored hash to inspect")
	if err := cmd.Parse(args); err != nil {
		return exitUsage
	}
	if *hash == "" {
		fmt.Fprintln(stderr, "Error: -hash is required")
		return exitUsage
	}

	codec, _, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	info, err := codec.Info(*hash)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	needs, err := codec.NeedsRehash(*hash)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "driver=%s identifier=%s cost=%d needs_rehash=%t\n",
		info.Driver, info.Params["identifier"], info.Params["cost"], needs)
	return exitOK
}

func setup(configPath string, stderr io.Writer) (*hashing.Codec, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := logging.New(stderr, cfg.Log.Level, cfg.Log.Pretty)
	codec, err := hashing.NewCodec(cfg.CodecOptions(&logger))
	if err != nil {
		return nil, logger, err
	}

	logger.Debug().
		Int("work_factor", codec.WorkFactor()).
		Str("identifier", codec.Identifier().String()).
		Msg("codec ready")
	return codec, logger, nil
}

// readPassword returns the first line of r without its line terminator.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", errors.New("no password on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
