// Package payment models the payment record attached to an order: the
// method, the processing state machine, and refund accounting. A full
// refund is what drives a delivered order into its refunded state.
//
// Status transitions:
//
//	pending ──> processing ──> paid ──> partially_refunded ──> refunded
//	   │            │  ▲        │              │
//	   │            │  │        └──────────────┴──> (further refunds)
//	   ├────────────┤  └── failed (retryable)
//	   └──> cancelled
//
// refunded and cancelled are terminal; failed payments may retry
// processing.
package payment
