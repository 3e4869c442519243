/*
Package errors implements custom error interfaces for the registry.

The idea is to reuse as many errors from this package as possible and
introduce new error types only if necessary, to keep the taxonomy small.
Errors are categorized by their root error instance. Each root error has a
unique code and every error created during runtime wraps one of the root
errors. Root errors are declared here, extensions may Register their own.

Use Wrap or Wrapf to add context to an error without losing its category.
Use the root error's Is method to test the category of any wrapped error.
*/
package errors
