package cmd

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/sestinj/amicable/internal/chain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chainsCmd = &cobra.Command{
	Use:   "chains [N]",
	Short: "List every amicable chain with no member exceeding N",
	Long:  "Lists all cycles of the divisor-sum function inside [1, N], longest first. N defaults to the configured limit.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

type chainRow struct {
	Length  int         `json:"length"`
	Least   int         `json:"least"`
	Members chain.Chain `json:"members"`
}

func runChains(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	return e.doChains(args)
}

func (e *env) doChains(args []string) error {
	n := e.cfg.Limit
	if len(args) == 1 {
		var err error
		if n, err = parseLimit(args[0]); err != nil {
			return err
		}
	}

	sums, err := chain.SieveParallel(e.ctx, n, e.cfg.Workers)
	if err != nil {
		return fmt.Errorf("sieving divisor sums: %w", err)
	}

	rows := []chainRow{}
	chain.Cycles(sums, func(c chain.Chain) {
		c = c.Canonical()
		rows = append(rows, chainRow{Length: c.Len(), Least: c.Least(), Members: c})
	})
	slices.SortFunc(rows, func(a, b chainRow) int {
		if a.Length != b.Length {
			return cmp.Compare(b.Length, a.Length)
		}
		return cmp.Compare(a.Least, b.Least)
	})
	e.logger.Debug("Collected chains", zap.Int("limit", n), zap.Int("count", len(rows)))

	if e.jsonOut {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintf(e.stdout, "No amicable chains with no element exceeding %d.\n", n)
		return nil
	}

	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LENGTH\tLEAST\tMEMBERS")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%d\t%s\n", r.Length, r.Least, r.Members.Format(e.cfg.Separator+" "))
	}
	return w.Flush()
}
