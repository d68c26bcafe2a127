package proximity

import "sync"

// task splits [0, size) into one contiguous chunk per worker and calls fn for every index.
// fn must only write to the slot of its own index.
func task(workersCount int, size int, fn func(i int)) {
	var wg sync.WaitGroup
	workersCount = max(DEFAULT_WORKERS, workersCount)
	chunkSize := (size + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, size))
	}
	wg.Wait()
}
