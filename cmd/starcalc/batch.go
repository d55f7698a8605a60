package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ellery/starcalc/internal/calc"
)

// runBatch evaluates one expression per input line and prints each result,
// or "Error". Blank lines are skipped. It reports whether any line failed.
func runBatch(r io.Reader, w io.Writer) (failed bool, err error) {
	c := calc.NewController()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		c.Load(line)
		if err := c.Evaluate(); err != nil {
			log.Printf("STARCALC Batch: %q: %v", line, err)
			failed = true
		}

		result, _ := c.Result()
		if _, err := fmt.Fprintln(w, result); err != nil {
			return failed, err
		}
	}
	return failed, scanner.Err()
}
