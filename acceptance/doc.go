// Package acceptance contains godog feature tests exercising the
// registration, login and token verification flows end to end.
package acceptance
