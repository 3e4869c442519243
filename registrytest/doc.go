/*
Package registrytest provides mocks and helpers for testing code that is
built on top of the registry interfaces: authenticators, transactions and
condition generators. Keep implementations here free of assertions so that
each test decides how strict it wants to be.
*/
package registrytest
