/*
Package x contains some standard extensions and the interfaces they share,
like the Authenticator.

Extensions implement common functionality (ticket ledger, operator
approvals) and can be combined together to construct an application. Each
extension lives in its own subpackage.
*/
package x
