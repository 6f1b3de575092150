package builder

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/specialistvlad/depviz/internal/source"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// fetcher performs the source calls of one Build. In prefetch mode calls for
// pushed frames start early on background goroutines; the traversal later
// collects the result when it pops the frame.
//
// schedule and fetch are only called from the traversal goroutine, so the
// pending map needs no lock.
type fetcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	src    source.Source

	sem     *semaphore.Weighted
	flight  singleflight.Group
	pending map[string]<-chan singleflight.Result

	calls atomic.Int64
}

func newFetcher(ctx context.Context, src source.Source, workers int) *fetcher {
	ctx, cancel := context.WithCancel(ctx)
	f := &fetcher{
		ctx:     ctx,
		cancel:  cancel,
		src:     src,
		pending: make(map[string]<-chan singleflight.Result),
	}
	if workers > 1 {
		f.sem = semaphore.NewWeighted(int64(workers))
	}
	return f
}

// call makes one source request and normalizes its error to *source.FetchError.
func (f *fetcher) call(ctx context.Context, id nodeid.Identity) ([]nodeid.Spec, error) {
	f.calls.Add(1)
	specs, err := f.src.Fetch(ctx, id.Name, id.Version)
	if err != nil {
		var fetchErr *source.FetchError
		if !errors.As(err, &fetchErr) {
			err = &source.FetchError{Node: id, Err: err}
		}
		return nil, err
	}
	return specs, nil
}

// schedule starts fetching id in the background. It is a no-op outside
// prefetch mode or when id is already in flight.
func (f *fetcher) schedule(id nodeid.Identity) {
	if f.sem == nil {
		return
	}
	key := id.String()
	if _, ok := f.pending[key]; ok {
		return
	}
	f.pending[key] = f.flight.DoChan(key, func() (any, error) {
		if err := f.sem.Acquire(f.ctx, 1); err != nil {
			return nil, &source.FetchError{Node: id, Err: err}
		}
		defer f.sem.Release(1)
		return f.call(f.ctx, id)
	})
}

// fetch returns the metadata of id, consuming a scheduled result when there
// is one.
func (f *fetcher) fetch(id nodeid.Identity) ([]nodeid.Spec, error) {
	key := id.String()
	ch, ok := f.pending[key]
	if !ok {
		return f.call(f.ctx, id)
	}
	delete(f.pending, key)

	res := <-ch
	if res.Err != nil {
		return nil, res.Err
	}
	specs, _ := res.Val.([]nodeid.Spec)
	return specs, nil
}

// close cancels outstanding work and waits for it to finish.
func (f *fetcher) close() {
	f.cancel()
	for key, ch := range f.pending {
		<-ch
		delete(f.pending, key)
	}
}

// count returns the number of source calls made so far.
func (f *fetcher) count() int {
	return int(f.calls.Load())
}
