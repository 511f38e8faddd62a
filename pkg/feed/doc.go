// Package feed implements the HTTP client for the remote package feed.
//
// The feed is the external index collaborator: given a package id it
// returns every candidate version together with its dependency groups and
// archive download URL. Responses are cached through a [cache.Cache]
// backend and metadata queries are retried with backoff on transient
// failures. Archive downloads are not handled here; see the fetch package.
//
// [cache.Cache]: github.com/nupull/nupull/pkg/cache.Cache
package feed
