package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

func printTable(title string, headers []string, rows [][]string) {
	if title != "" {
		fmt.Println(title)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	fmt.Println()
}
