// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Command bustubctl is a small toolbox for exercising the buffer pool and
// LRU-K replacer outside of a test binary.
//
// Run with `go run ./cmd/bustubctl`.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "bustubctl",
		HelpName:  "bustubctl",
		Usage:     "utilities to exercise the buffer pool and LRU-K replacer",
		Copyright: "(c) 2024 Fantom Foundation",
		Commands: []*cli.Command{
			&demoCommand,
			&benchCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
