// Package blog provides the post repository: metadata rows in a relational
// store, post bodies in a blob store, and the orchestration that keeps the
// two consistent enough for correct reads without a shared transaction.
//
// It exposes a single Service interface for create/read/update/delete/list
// of posts. Implementations of the metadata store (memory, Postgres) and
// the blob store (memory, filesystem, S3-compatible) are provided under
// subpackages.
//
// Consistency Strategy
//
// There is no cross-store atomicity. Writes order the two stores so that a
// metadata row never exists without a preceding blob write attempt, and
// deletes remove the row first so an orphaned blob is unreachable rather
// than a dangling reference. The one compensating action is on create: if
// the metadata insert fails after the blob write, the blob is deleted
// best-effort before the failure is returned.
package blog
