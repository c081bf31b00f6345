// Package report prints summaries of a finished frequency document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/kotoba-lab/verbfreq/pkg/freq"
)

// Action prints the top-N surface forms and inflection tags from a result
// document produced by the count command.
func Action(c *cli.Context) error {
	path := c.String("input")
	n := c.Int("n")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var table freq.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	fmt.Printf("--- Top %d surface forms ---\n", n)
	for _, row := range topVerbs(&table, n) {
		fmt.Println(row)
	}

	fmt.Printf("\n--- Top %d inflections ---\n", n)
	for _, row := range topInflections(&table, n) {
		fmt.Println(row)
	}
	return nil
}

// topVerbs formats the n most frequent surface forms as
// "surface:count (pos, dictionary form)", sorted by count descending with
// surface text breaking ties so output is stable.
func topVerbs(table *freq.Table, n int) []string {
	type kv struct {
		surface string
		entry   *freq.VerbEntry
	}

	sorted := make([]kv, 0, len(table.Verbs))
	for surface, entry := range table.Verbs {
		sorted = append(sorted, kv{surface, entry})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].entry.Frequency != sorted[j].entry.Frequency {
			return sorted[i].entry.Frequency > sorted[j].entry.Frequency
		}
		return sorted[i].surface < sorted[j].surface
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	rows := make([]string, 0, n)
	for _, item := range sorted[:n] {
		rows = append(rows, fmt.Sprintf("%s:%d (%s, %s)",
			item.surface, item.entry.Frequency, item.entry.POS, item.entry.Lemma))
	}
	return rows
}

func topInflections(table *freq.Table, n int) []string {
	type kv struct {
		tag   string
		count int
	}

	sorted := make([]kv, 0, len(table.Inflections))
	for tag, count := range table.Inflections {
		sorted = append(sorted, kv{tag, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].tag < sorted[j].tag
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	rows := make([]string, 0, n)
	for _, item := range sorted[:n] {
		rows = append(rows, fmt.Sprintf("%s:%d", item.tag, item.count))
	}
	return rows
}
