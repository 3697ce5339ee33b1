// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/fantom-foundation/bustub-go/lru"
)

var benchCommand = cli.Command{
	Action: runBench,
	Name:   "bench",
	Usage:  "runs the canonical LRU-K tie-break scenario and prints the eviction order",
	Flags: []cli.Flag{
		&replacerKFlag,
	},
}

func runBench(ctx *cli.Context) error {
	k := ctx.Int(replacerKFlag.Name)
	const numFrames = 7

	r := lru.NewKReplacer(numFrames, k)
	sequence := []lru.FrameID{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4}

	log.Printf("replaying access sequence %v against %d frames, k=%d", sequence, numFrames, k)
	for _, f := range sequence {
		if err := r.RecordAccess(f); err != nil {
			return err
		}
	}
	for f := lru.FrameID(0); f < numFrames; f++ {
		if err := r.SetEvictable(f, true); err != nil {
			return err
		}
	}

	fmt.Printf("evictable frames: %d\n", r.Size())
	for {
		frame, ok := r.Evict()
		if !ok {
			break
		}
		fmt.Printf("evicted frame %d\n", frame)
	}
	return nil
}
