// Package artists provides the verified-artist directory consulted when a
// fingerprint hit has to be attributed to an owner.
//
// Store persists identities in SQLite. Verification only reads from it;
// Upsert and Remove exist so operators can seed and curate the directory.
// Finder turns a recognized artist name into the candidate list the resolver
// scores, issuing exactly one directory query per lookup.
package artists
