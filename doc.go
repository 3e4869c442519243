/*

Package registry defines interfaces used throughout the module, such as
storage, transactions, handlers and identity. Look into this package to get
a brief overview of design decisions made around interfaces and extension
points. The ticket ledger itself is implemented in x/ticket, on top of the
store and orm packages.

Identities are opaque addresses derived from conditions. A condition
describes who may authorize an action, an address is its one-way digest.
The registry never inspects what stands behind an address; authentication
is delegated to the x.Authenticator given to each handler.

*/
package registry
