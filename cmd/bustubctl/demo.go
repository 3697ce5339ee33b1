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

	"github.com/fantom-foundation/bustub-go/buffer"
	"github.com/fantom-foundation/bustub-go/common"
	"github.com/fantom-foundation/bustub-go/disk"
)

var (
	poolSizeFlag = cli.IntFlag{
		Name:  "pool-size",
		Usage: "number of frames in the buffer pool",
		Value: 8,
	}
	replacerKFlag = cli.IntFlag{
		Name:  "replacer-k",
		Usage: "k for the LRU-K replacer",
		Value: 2,
	}
	dbFileFlag = cli.StringFlag{
		Name:  "db-file",
		Usage: "backing file for pages (omit to run entirely in memory)",
	}
	profileMemFlag = cli.BoolFlag{
		Name:  "profile-mem",
		Usage: "print runtime memory stats (alloc/sys/GC count) before and after the demo run",
	}
)

var demoCommand = cli.Command{
	Action: runDemo,
	Name:   "demo",
	Usage:  "allocates pool-size+2 pages, unpinning each, then reports the page count and the pool's memory footprint",
	Flags: []cli.Flag{
		&poolSizeFlag,
		&replacerKFlag,
		&dbFileFlag,
		&profileMemFlag,
	},
}

func openDiskManager(ctx *cli.Context) (disk.DiskManager, error) {
	path := ctx.String(dbFileFlag.Name)
	if path == "" {
		return disk.NewMemoryManager(), nil
	}
	return disk.NewFileManager(path)
}

func runDemo(ctx *cli.Context) error {
	poolSize := ctx.Int(poolSizeFlag.Name)
	replacerK := ctx.Int(replacerKFlag.Name)

	dm, err := openDiskManager(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := dm.Close(); err != nil {
			log.Printf("failure closing disk manager: %v", err)
		}
	}()

	log.Printf("creating pool: pool-size=%d replacer-k=%d", poolSize, replacerK)
	pool := buffer.NewPool(poolSize, replacerK, dm)

	ids := make([]disk.PageID, 0, poolSize+2)
	allocate := func() error {
		for i := 0; i < poolSize+2; i++ {
			id, err := pool.NewPage()
			if err != nil {
				return err
			}
			if id == disk.InvalidPageID {
				log.Printf("page %d: pool full, all frames pinned", i)
				continue
			}
			ids = append(ids, id)
			if _, err := pool.UnpinPage(id, false); err != nil {
				return err
			}
		}
		return nil
	}

	if ctx.Bool(profileMemFlag.Name) {
		common.PrintMemoryUsage(true)
		var allocErr error
		common.SampleAndPrintMemoryUsageForCall(0.5, false, func() {
			allocErr = allocate()
		})
		if allocErr != nil {
			return allocErr
		}
		common.PrintMemoryUsage(true)
	} else if err := allocate(); err != nil {
		return err
	}

	fmt.Printf("allocated %d pages, pool holds %d frames\n", len(ids), pool.Size())
	fmt.Printf("memory footprint:\n%v", pool.GetMemoryFootprint())
	return nil
}
