// Package order models the customer order aggregate: line items priced at
// order time, computed financial totals, and the delivery status state
// machine that the dispatch flow drives from pending through delivered.
//
// Status transitions:
//
//	pending → accepted → preparing → ready_for_pickup → picked_up → delivered
//	   │         │           │              │                          │
//	   └─────────┴───────────┴──────────────┴──> cancelled             └──> refunded
//
// cancelled and refunded are terminal. refunded is reachable only from
// delivered and only via a full payment refund.
package order
