// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Btreepivot aggregates btree benchmark result records into a pivot
// table.
//
// Usage:
//
//	btreepivot [-agg fields] [-csv | -html] [-chart file] [dataset]
//
// The dataset is a newline-delimited JSON file of result records as
// emitted by the benchmark binaries; it defaults to out.out. Records
// are grouped by every build and run field that both discriminates
// (takes more than one value in the dataset) and is not aggregated
// over, and each value field is averaged per group.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/btreelab/btreebench/benchpivot"
	"github.com/btreelab/btreebench/benchrec"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: btreepivot [flags] [dataset]

btreepivot reads btree benchmark result records from dataset (default
out.out) and prints the pivot table of per-configuration means.
`)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)

	flag.Usage = usage
	agg := flag.String("agg", "op", "comma-separated build/run `fields` to aggregate over")
	csvOut := flag.Bool("csv", false, "print the table as CSV")
	htmlOut := flag.Bool("html", false, "print the table as HTML")
	chartFile := flag.String("chart", "", "also write a bar chart to `file`")
	chartField := flag.String("chartfield", "time", "value `field` charted by -chart")
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	path := "out.out"
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	reg := benchrec.DefaultRegistry()
	records, err := benchrec.ReadAll(path, reg)
	if err != nil {
		log.Fatal(err)
	}

	var aggFields []string
	if *agg != "" {
		aggFields = strings.Split(*agg, ",")
	}
	tab, err := benchpivot.Pivot(records, reg, aggFields)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *csvOut:
		err = tab.WriteCSV(os.Stdout)
	case *htmlOut:
		err = tab.WriteHTML(os.Stdout)
	default:
		err = tab.WriteText(os.Stdout)
	}
	if err != nil {
		log.Fatal("writing output: ", err)
	}

	if *chartFile != "" {
		if err := tab.Chart(*chartFile, *chartField); err != nil {
			log.Fatal(err)
		}
	}
}
