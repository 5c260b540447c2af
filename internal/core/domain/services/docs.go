// Package services contains stateless domain services that coordinate
// multiple aggregates: planning order batches and matching them to riders.
package services
