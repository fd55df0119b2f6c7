package util

import "golang.org/x/sync/errgroup"

// ParseSourcesConcurrently runs parse over each path with up to
// concurrency goroutines in flight, returning one output string per
// path in the same order the paths were given. concurrency < 0 means
// no limit; concurrency == 0 disables concurrency entirely. The first
// error from any parse is returned; the other parses are not cancelled
// and still run to completion.
//
// cmd/shastina-dump uses this to parse several source files at once
// while still printing their traces in the order given on the command
// line: each goroutine writes into its own slot of a pre-sized slice,
// so no intermediate channel or sort is needed to restore ordering.
func ParseSourcesConcurrently(paths []string, concurrency int, parse func(path string) (string, error)) ([]string, error) {
	eg := errgroup.Group{}
	if concurrency == 0 {
		eg.SetLimit(1)
	} else if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	outputs := make([]string, len(paths))
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			out, err := parse(path)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
