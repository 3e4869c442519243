/*
Package app assembles the ticket ledger into a runnable application. It
provides the message router, the transactional delivery wrapper that
commits or discards each transaction as a whole, genesis initialization,
and an authenticator that reads the acting identities from the context.
*/
package app
