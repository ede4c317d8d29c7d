// Package search is the client side of the Google Custom Search JSON API used
// by shen.
//
// # Overview
//
// The package turns a user search term, a result type and a page number into
// a single outbound GET request and decodes the JSON reply into a typed
// Response. It owns the query augmentation and pagination rules and nothing
// else: no caching, no retries and no validation of the term (callers trim
// and reject empty queries before calling).
//
// # Query construction
//
//   - Video searches restrict the term to the video hosting sites:
//     "{term} site:youtube.com OR site:aparat.com".
//   - Image searches add searchType=image; all and video use web search.
//   - The API paginates with a 1-based offset in steps of ten, so page p
//     maps to start=(p-1)*10+1.
//
// # Usage
//
//	client := search.NewClient(search.ClientConfig{
//		APIKey: cfg.Google.APIKey,
//		CX:     cfg.Google.CX,
//	})
//	resp, err := client.Execute(ctx, search.Request{Term: "cats", Type: search.TypeAll, Page: 1})
//	var apiErr *search.APIError
//	if errors.As(err, &apiErr) {
//		// upstream reported an error, apiErr.Message is shown verbatim
//	}
//
// # Errors
//
// Execute returns *APIError when the decoded body carries an error object and
// *TransportError for everything else (network failures, undecodable bodies,
// non-2xx replies without an error object).
package search
