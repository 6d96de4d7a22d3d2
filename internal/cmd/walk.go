package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sestinj/amicable/internal/chain"
	"github.com/spf13/cobra"
)

var walkLimit int

var walkCmd = &cobra.Command{
	Use:   "walk START",
	Short: "Follow the divisor-sum sequence from START",
	Long:  "Prints the aliquot sequence from START until it repeats or leaves [1, limit].",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

func init() {
	walkCmd.Flags().IntVar(&walkLimit, "limit", 0, "largest value followed (default from config)")
	rootCmd.AddCommand(walkCmd)
}

type walkResult struct {
	Start   int         `json:"start"`
	Limit   int         `json:"limit"`
	Path    []int       `json:"path"`
	Loop    chain.Chain `json:"loop,omitempty"`
	Escaped *int        `json:"escaped,omitempty"`
}

func runWalk(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	return e.doWalk(args[0], walkLimit)
}

func (e *env) doWalk(startArg string, limit int) error {
	start, err := parseLimit(startArg)
	if err != nil {
		return err
	}
	if limit == 0 {
		limit = max(e.cfg.Limit, start)
	}
	if limit < start {
		return fmt.Errorf("%w: limit %d is below start %d", chain.ErrInvalidArgument, limit, start)
	}

	sums, err := chain.SieveParallel(e.ctx, limit, e.cfg.Workers)
	if err != nil {
		return fmt.Errorf("sieving divisor sums: %w", err)
	}
	tr, err := chain.Walk(sums, start)
	if err != nil {
		return err
	}

	if e.jsonOut {
		res := walkResult{Start: start, Limit: limit, Path: tr.Path, Loop: tr.Loop}
		if !tr.Loops() {
			res.Escaped = &tr.Escaped
		}
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	// Close the printed sequence with the value that ended it.
	last := tr.Escaped
	if tr.Loops() {
		last = tr.Loop[0]
	}
	sep := e.cfg.Separator + " "
	fmt.Fprintln(e.stdout, chain.Chain(tr.Path).Format(sep)+sep+strconv.Itoa(last))

	if tr.Loops() {
		fmt.Fprintf(e.stdout, "Loops: length %d, least %d (path length %d)\n",
			tr.Loop.Len(), tr.Loop.Least(), len(tr.Path))
		return nil
	}
	fmt.Fprintf(e.stdout, "Escapes: %d is outside [1, %d] (path length %d)\n", tr.Escaped, limit, len(tr.Path))
	return nil
}
