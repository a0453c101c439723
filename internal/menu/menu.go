// Package menu runs the interactive question loop over a generated tree.
package menu

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prompt is printed before every read.
const Prompt = `Are you interested in:
(T)otal number of people in the tree
Total number of people in the tree by (D)ecade
(N)ames duplicated
(Q)uit
> `

// Report is the view of the tree the menu queries.
type Report interface {
	CountTotal() int
	CountByDecade() map[int]int
	Decades() []int
	DuplicateFullNames() []string
}

// Run answers menu choices read from in until the user quits, in is
// exhausted, or ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, report Report) error {
	p := message.NewPrinter(language.English)
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch choice := strings.ToUpper(strings.TrimSpace(scanner.Text())); choice {
		case "T":
			p.Fprintf(out, "The tree contains %d people in total\n", report.CountTotal())
		case "D":
			counts := report.CountByDecade()
			for _, decade := range report.Decades() {
				// Decades are years, so they skip digit grouping.
				p.Fprintf(out, "%s: %d\n", strconv.Itoa(decade), counts[decade])
			}
		case "N":
			dupes := report.DuplicateFullNames()
			p.Fprintf(out, "There are %d duplicate names in the tree:\n", len(dupes))
			for _, name := range dupes {
				p.Fprintf(out, "* %s\n", name)
			}
		case "Q", "QUIT", "EXIT":
			return nil
		default:
			io.WriteString(out, "Bad Input. Please choose one of the options in Menu:\n")
		}
	}
}
