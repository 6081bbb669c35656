package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
)

const (
	flagFile    = "file"
	flagServer  = "server"
	flagRound   = "round"
	flagTimeout = "timeout"

	envServer = "JACKPOT_SERVER"

	historyPathFormat = "/api/v1/jackpot/history/%s"
)

var errNoProof = errors.New("input holds no proof")

// published is what the tool checks: a proof, and the round record it came with if any
type published struct {
	proof domain.Proof
	entry *domain.ArchiveEntry
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:  "jackpot-verify",
		Usage: "recompute a jackpot draw from its published proof",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagFile,
				Aliases: []string{"f"},
				Usage:   "archive entry or proof JSON, - for stdin",
			},
			&cli.StringFlag{
				Name:    flagServer,
				Aliases: []string{"s"},
				Usage:   "base URL of a running engine",
				EnvVars: []string{envServer},
			},
			&cli.StringFlag{
				Name:    flagRound,
				Aliases: []string{"r"},
				Usage:   "round hash to fetch from --server",
			},
			&cli.DurationFlag{
				Name:  flagTimeout,
				Value: 10 * time.Second,
				Usage: "HTTP timeout for --server",
			},
		},
		Action: func(c *cli.Context) error {
			in, err := load(c, stdin)
			if err != nil {
				return err
			}
			return report(stdout, in)
		},
	}
}

func load(c *cli.Context, stdin io.Reader) (published, error) {
	switch path := c.String(flagFile); {
	case path == "-":
		return decode(stdin)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return published{}, err
		}
		defer f.Close()
		return decode(f)
	case c.String(flagRound) != "":
		server := c.String(flagServer)
		if server == "" {
			return published{}, fmt.Errorf("--%s is required with --%s", flagServer, flagRound)
		}
		return fetch(c.Context, &http.Client{Timeout: c.Duration(flagTimeout)}, server, c.String(flagRound))
	default:
		return published{}, fmt.Errorf("one of --%s or --%s is required", flagFile, flagRound)
	}
}

// decode accepts either a full archive entry or a bare proof object
func decode(r io.Reader) (published, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return published{}, err
	}

	var entry domain.ArchiveEntry
	if err := json.Unmarshal(data, &entry); err == nil && entry.Proof.RoundHash != "" {
		return published{proof: entry.Proof, entry: &entry}, nil
	}

	var proof domain.Proof
	if err := json.Unmarshal(data, &proof); err != nil {
		return published{}, fmt.Errorf("decode proof: %w", err)
	}
	if proof.RoundHash == "" {
		return published{}, errNoProof
	}
	return published{proof: proof}, nil
}

func fetch(ctx context.Context, client *http.Client, server, roundHash string) (published, error) {
	endpoint := strings.TrimRight(server, "/") + fmt.Sprintf(historyPathFormat, url.PathEscape(roundHash))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return published{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return published{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return published{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return published{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decode(bytes.NewReader(body))
}

func report(w io.Writer, in published) error {
	proof := in.proof
	out, err := fairness.VerifyProof(proof)
	if err == nil && in.entry != nil {
		err = archive.CheckConsistency(*in.entry)
	}
	if err != nil {
		fmt.Fprintf(w, "round %s: INVALID\n", proof.RoundHash)
		return err
	}
	fmt.Fprintf(w, "round %s: valid\n", proof.RoundHash)
	fmt.Fprintf(w, "  ticket %d of %d\n", out.Ticket, out.Total)
	fmt.Fprintf(w, "  winner %s\n", out.WinnerID)
	return nil
}
