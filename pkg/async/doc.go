// Package async runs per-request fan-out as generic futures.
//
// Async starts a function in its own goroutine and returns a *Future. A
// batch of futures is collected with one of two policies:
//
//   - WaitAll is fail-fast: it returns as soon as any future fails.
//   - WaitAllSettled waits for every future and reports each outcome, so the
//     caller can degrade per item.
//
// Futures started with a cancelled context complete immediately with the
// context error and never call the function.
//
//	futures := make([]*async.Future[Author], len(ids))
//	for i, id := range ids {
//		futures[i] = async.Async(ctx, id, fetchAuthor)
//	}
//	authors, err := async.WaitAll(futures...)
package async
