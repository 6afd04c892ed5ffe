package runtime

import (
	"context"
	"time"
)

// beginGeneration reserves a queue slot and then the single in-flight
// slot. Returns a release func to be deferred.
func (r *Runtime) beginGeneration(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context.
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	// Reserve a queue slot, waiting at most MaxWait for one to free up.
	timer := time.NewTimer(r.cfg.MaxWait)
	defer timer.Stop()
	select {
	case r.queueCh <- struct{}{}:
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, errTooBusy
	}

	// Wait for the single in-flight slot; give the queue slot back on
	// every failure path.
	acquired := false
	defer func() {
		if !acquired {
			<-r.queueCh
		}
	}()
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	timer2 := time.NewTimer(r.cfg.MaxWait)
	defer timer2.Stop()
	select {
	case r.genCh <- struct{}{}:
		acquired = true
		return func() { <-r.genCh; <-r.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer2.C:
		return func() {}, errTooBusy
	}
}
