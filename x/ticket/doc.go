/*
Package ticket implements a non-fungible ticket ledger.

Every ticket is a uniquely identified token with immutable metadata, owned
by exactly one address. The owner may transfer a ticket, delegate the right
to transfer a single ticket to an approved address, or grant an operator
blanket control over all owned tickets. The safe transfer variant notifies
contract-capable recipients and requires a fixed acknowledgment value
before the transfer is committed.

Every mutating operation is transactional. All writes are staged in a
store cache-wrap and committed only when every precondition held and, for
safe transfers, the recipient acknowledged. A failed operation leaves the
ledger state untouched and emits no events.

The call-out to a recipient is the only point where control leaves the
ledger mid-operation. A re-entrant mutating call from within that hook is
rejected by the reentrancy guard.
*/
package ticket
