// Package addrindex derives balances, unspent outputs and transaction
// histories for a single address from a node that exposes
// searchrawtransactions alongside the usual raw-transaction calls.
//
// The confirmed view comes from a paginated address search and the
// unconfirmed view from the mempool. The two are fetched with separate
// calls, so a block found between them can leave a query with a view that
// is internally inconsistent but never corrupt. Nothing here tries to hide
// that gap.
//
// Known limitations:
//   - outputs owned through a P2SH wrapper are not recognised;
//   - an output spent by a transaction that neither the search nor the
//     mempool returned still shows up as unspent.
package addrindex
