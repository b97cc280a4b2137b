/*
Package errors implements the typed failure conditions used across the
module.

Each root error is registered with a unique numeric code. All errors
returned during runtime should wrap one of the registered roots, so
that callers can test failures with the Is method and report stable
codes across process boundaries. Use Wrap and Wrapf to add context to
an error without losing its identity.
*/
package errors
