package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sestinj/amicable/internal/chain"
	"github.com/spf13/cobra"
)

var longestCmd = &cobra.Command{
	Use:   "longest [N]",
	Short: "Find the longest amicable chain with no member exceeding N",
	Long: `Computes the longest amicable chain whose members are all at most N and prints
it starting from its least member. Without N, prompts for one on stdin; an empty
answer uses the configured limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLongest,
}

func init() {
	rootCmd.AddCommand(longestCmd)
}

type longestResult struct {
	Limit  int         `json:"limit"`
	Chain  chain.Chain `json:"chain"`
	Length int         `json:"length"`
	Least  int         `json:"least,omitempty"`
}

func runLongest(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	return e.doLongest(args)
}

func (e *env) doLongest(args []string) error {
	var (
		n   int
		err error
	)
	if len(args) == 1 {
		n, err = parseLimit(args[0])
	} else {
		n, err = e.promptLimit()
	}
	if err != nil {
		return err
	}

	c, err := e.longest(n)
	if err != nil {
		return err
	}

	if e.jsonOut {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(longestResult{Limit: n, Chain: c, Length: c.Len(), Least: c.Least()})
	}

	if c.Len() == 0 {
		fmt.Fprintf(e.stdout, "No amicable chain with no element exceeding %d.\n", n)
		return nil
	}
	fmt.Fprintf(e.stdout, "Longest amicable chain with no element exceeding %d:\n", n)
	fmt.Fprintln(e.stdout, "    Chain:")
	fmt.Fprintf(e.stdout, "        %s\n", c.Format(e.cfg.Separator+"\n        "))
	fmt.Fprintf(e.stdout, "    Length = %d\n", c.Len())
	fmt.Fprintf(e.stdout, "    Least  = %d\n", c.Least())
	return nil
}

// promptLimit asks for N on stderr and reads one line from stdin.
func (e *env) promptLimit() (int, error) {
	fmt.Fprintf(e.stderr, "Enter a natural number [%d]: ", e.cfg.Limit)
	line, err := bufio.NewReader(e.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading limit: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return e.cfg.Limit, nil
	}
	return parseLimit(line)
}
