// Copyright 2025 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// piggybench runs a built-in dataset through the demo executor with
// statistics collection armed and prints the final report. It exists to
// exercise the collector end to end from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/piggyback/config"
	"github.com/pingcap/piggyback/executor"
	"github.com/pingcap/piggyback/expression"
	"github.com/pingcap/piggyback/statistics"
	"github.com/pingcap/piggyback/types"
	"github.com/pingcap/piggyback/util/logutil"
	"github.com/spf13/cobra"
)

const albumsTableID = 1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		confFile string
		tracks   int64
	)
	conf := config.NewConfig()
	cmd := &cobra.Command{
		Use:          "piggybench",
		Short:        "collect piggyback statistics over a demo query",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if confFile != "" {
				if err := conf.Load(confFile); err != nil {
					return errors.Trace(err)
				}
			}
			if err := logutil.InitLogger(logutil.NewLogConfig(conf.Log.Level, conf.Log.Format)); err != nil {
				return errors.Trace(err)
			}
			return runDemo(cmd.Context(), conf, tracks)
		},
	}
	cmd.Flags().StringVar(&confFile, "config", "", "config file path")
	cmd.Flags().BoolVar(&conf.PairKeyCompat, "pair-key-compat", conf.PairKeyCompat,
		"build pair keys without a delimiter (historical behavior)")
	cmd.Flags().BoolVar(&conf.VerboseReport, "verbose", conf.VerboseReport,
		"include dependency candidates in the report")
	cmd.Flags().Int64Var(&tracks, "tracks", 0,
		"filter albums on tracks = N (0 disables the filter)")
	return cmd
}

func runDemo(ctx context.Context, conf *config.Config, tracks int64) error {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := statistics.NewContext(statistics.Options{
		Output:        os.Stdout,
		PairKeyCompat: conf.PairKeyCompat,
		Verbose:       conf.VerboseReport,
	})

	cols := []statistics.ColumnInfo{
		{Name: "id", Desc: statistics.ColumnDescriptor{TableID: albumsTableID, ColumnID: 1}, Tag: types.TagNumeric},
		{Name: "artist", Desc: statistics.ColumnDescriptor{TableID: albumsTableID, ColumnID: 2}, Tag: types.TagText},
		{Name: "tracks", Desc: statistics.ColumnDescriptor{TableID: albumsTableID, ColumnID: 3}, Tag: types.TagNumeric},
	}
	rows := demoRows()

	var filter expression.Expression
	if tracks > 0 {
		filter = expression.NewFunction(expression.EQInt,
			&expression.Column{TableID: albumsTableID, ColumnID: 3, Name: "tracks"},
			&expression.Constant{Value: types.NewIntDatum(tracks)})
	}
	scan := executor.NewTableScanExec(albumsTableID, cols, rows, filter, collector)
	return errors.Trace(executor.Run(ctx, 1, scan, collector, nil))
}

func demoRows() []executor.Row {
	mk := func(id int64, artist string, tracks int64) executor.Row {
		return executor.Row{
			types.NewIntDatum(id),
			types.NewStringDatum(artist),
			types.NewIntDatum(tracks),
		}
	}
	return []executor.Row{
		mk(1, "ella", 3),
		mk(2, "ella", 12),
		mk(3, "miles", 3),
		mk(4, "miles", 8),
		mk(5, "mingus", 9),
		mk(6, "monk", 3),
	}
}
