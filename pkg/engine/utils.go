package engine

import "sync"

// parallelDo runs body(0..n-1) concurrently, keeping index 0 on the
// calling goroutine.
func parallelDo(n int, body func(i int)) {
	var wg = &sync.WaitGroup{}
	for i := 1; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body(i)
		}(i)
	}
	body(0)
	wg.Wait()
}
