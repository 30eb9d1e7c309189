package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessnumber/internal/digits"
	"github.com/robalobadob/guessnumber/internal/selftest"
	"github.com/robalobadob/guessnumber/internal/solver"
)

var (
	playCmd = &cobra.Command{
		Use:   "play [secret...]",
		Short: "Let the solver crack the given secrets (or secrets read from stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := solver.New()
			if len(args) == 0 {
				return playStream(e, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.MaxRounds)
			}
			return playArgs(e, args, cmd.OutOrStdout(), cfg.MaxRounds)
		},
	}

	selftestStart     int
	selftestEnd       int
	selftestWorkers   int
	selftestMaxRounds int

	selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Play every valid secret in [start, end) and report round counts",
		RunE:  runSelftest,
	}
)

func init() {
	selftestCmd.Flags().IntVar(&selftestStart, "start", 0, "first secret (inclusive)")
	selftestCmd.Flags().IntVar(&selftestEnd, "end", 10000, "last secret (exclusive)")
	selftestCmd.Flags().IntVar(&selftestWorkers, "workers", 4, "parallel engines")
	selftestCmd.Flags().IntVar(&selftestMaxRounds, "max-rounds", 0, "per-game cutoff (0 uses MAX_ROUNDS)")
}

// errInvalidSecret is returned by playArgs when any argument is not a valid secret.
var errInvalidSecret = errors.New("invalid answer number")

// playArgs validates every secret before playing any of them.
func playArgs(e *solver.Engine, secrets []string, w io.Writer, maxRounds int) error {
	for _, s := range secrets {
		if !digits.IsValid(s) {
			fmt.Fprintln(w, "Invalid answer number", s)
			return fmt.Errorf("%w: %q", errInvalidSecret, s)
		}
	}
	for _, s := range secrets {
		if err := playOne(e, digits.Number(s), w, maxRounds); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

// playStream reads one secret per line until EOF, skipping invalid lines.
func playStream(e *solver.Engine, r io.Reader, w io.Writer, maxRounds int) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if !digits.IsValid(s) {
			fmt.Fprintln(w, "Invalid answer number", s)
			continue
		}
		if err := playOne(e, digits.Number(s), w, maxRounds); err != nil {
			return err
		}
	}
	return sc.Err()
}

func playOne(e *solver.Engine, secret digits.Number, w io.Writer, maxRounds int) error {
	tr, err := selftest.Play(e, secret, maxRounds)
	for _, rd := range tr.Rounds {
		fmt.Fprintf(w, "Round-%d %s %s\n", rd.N, rd.Guess, rd.Result)
	}
	if err != nil {
		return err
	}
	if !tr.Solved {
		log.Warn().Str("secret", string(secret)).Int("rounds", len(tr.Rounds)).Msg("round limit reached")
	}
	return nil
}

func runSelftest(cmd *cobra.Command, args []string) error {
	maxRounds := selftestMaxRounds
	if maxRounds < 1 {
		maxRounds = cfg.MaxRounds
	}
	rep, err := selftest.Run(cmd.Context(), selftest.Options{
		Start:     selftestStart,
		End:       selftestEnd,
		Workers:   selftestWorkers,
		MaxRounds: maxRounds,
	})
	if err != nil {
		log.Error().Err(err).Msg("self-test failed")
		return err
	}
	for _, g := range rep.Slow {
		log.Warn().Str("secret", string(g.Secret)).Int("rounds", g.Rounds).Bool("solved", g.Solved).Msg("slow game")
	}
	log.Info().Int("games", rep.Games).Int("maxRounds", rep.MaxRounds).
		Float64("mean", rep.Mean()).Int("unsolved", rep.Unsolved).
		Interface("histogram", rep.Histogram).Msg("self-test done")
	return nil
}
