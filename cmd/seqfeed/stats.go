package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/shenwei356/seqfeed/factory"
	"github.com/shenwei356/seqfeed/internal/logging"
	"github.com/shenwei356/seqfeed/internal/reportstats"
	"github.com/shenwei356/seqfeed/perthread"
)

func newStatsCmd() *cobra.Command {
	var histogramPath string
	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Report read length and quality statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, inputs, err := resolveParams(cmd, args)
			if err != nil {
				return err
			}
			composer, err := factory.Build(factory.Config{
				Format:       p.Format,
				Params:       p,
				Singles:      inputs.singles,
				Mate1:        inputs.mate1,
				Mate2:        inputs.mate2,
				FileParallel: inputs.fileParallel,
				Warner:       logging.Warner{},
			})
			if err != nil {
				return err
			}
			defer composer.Close()

			nThreads := p.NThreads
			if nThreads <= 0 {
				nThreads = 1
			}

			var mu sync.Mutex
			stats := reportstats.New()

			var wg sync.WaitGroup
			errs := make([]error, nThreads)
			for t := 0; t < nThreads; t++ {
				wg.Add(1)
				go func(t int) {
					defer wg.Done()
					f := perthread.New(composer, p.MaxBuf, inputs.revCompMate2)
					for {
						ra, rb, ok, err := f.NextReadPair()
						if err != nil {
							errs[t] = err
							return
						}
						if !ok {
							break
						}
						mu.Lock()
						stats.Observe(len(ra.Seq), ra.Qual, ra.Filtered)
						if rb != nil && !rb.Empty() {
							stats.Observe(len(rb.Seq), rb.Qual, rb.Filtered)
						}
						mu.Unlock()
					}
				}(t)
			}
			wg.Wait()

			for _, err := range errs {
				if err != nil {
					return err
				}
			}

			summary := stats.Summary()
			fmt.Printf("records:        %d (filtered: %d)\n", summary.Count, summary.Filtered)
			fmt.Printf("mean length:    %.2f (stddev %.2f)\n", summary.MeanLength, summary.StdDevLength)
			fmt.Printf("mean quality:   %.2f (stddev %.2f)\n", summary.MeanQuality, summary.StdDevQuality)

			if histogramPath != "" {
				if err := stats.WriteLengthHistogram(histogramPath); err != nil {
					return err
				}
				logging.Logger().Infof("wrote length histogram to %s", histogramPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&histogramPath, "histogram", "", "write a read-length histogram PNG to this path")
	return cmd
}
