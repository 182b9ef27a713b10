package channel_utils

import (
	"sync"

	"generate-story-lambda/application/ports/outbound"
)

// MergeChannels fans values from every input channel into a single channel,
// which closes once all inputs are closed. Goroutines run on the shared
// worker pool.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	output := func(c <-chan T) {
		for val := range c {
			merged <- val
		}
		wg.Done()
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			output(ch)
		})
		if err != nil {
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}
