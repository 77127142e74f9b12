// Package pagination implements cursor-paginated fetching with a cache-first
// short-circuit for the Instagram aggregation API.
//
// One generic engine serves every list endpoint. An Endpoint describes the
// wire shape (path, identifier and cursor parameter names, how to pull the
// next cursor and the records out of a decoded page); NewStream turns it into
// a lazy, single-pass Stream:
//
//	stream, err := pagination.NewStream(ctx, endpoint, upstream, cache, "instagram",
//		pagination.Options{MaxPages: 3})
//	if err != nil {
//		return err // validation error, no I/O happened
//	}
//	defer stream.Close()
//
//	for stream.Next() {
//		post := stream.Item()
//		...
//	}
//	if err := stream.Err(); err != nil {
//		return err
//	}
//
// Per stream:
//
//	INIT → CACHE_CHECK ─hit──→ STREAM_CACHED → DONE
//	                   └miss─→ FETCH_PAGE ⇄ FETCH_PAGE (while budget > 0) → DONE
//	                                 └──→ ABORT (upstream, decoding or cache error)
//
// A cache hit yields the cached records in stored order and never calls the
// upstream, whatever the page budget. On a miss, each record of a live page is
// appended to the cache right before it is yielded, so a consumer that stops
// early or a failure on a later page leaves exactly the yielded records
// cached. Pages are fetched strictly one after another, and only when the
// consumer asks for the record after the last one buffered.
//
// # Termination
//
// Every successfully fetched page consumes one unit of the page budget, empty
// or not. By default the budget is the only bound: when a page carries no
// next cursor, the cursor parameter is dropped and the next budgeted request
// gets the upstream's default first page again. Options.StopAtLastPage ends
// the stream at the first page without a next cursor instead.
package pagination
