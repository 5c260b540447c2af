// Package dispatch models the delivery side of an order's life: the zones
// batching operates within and the rider assignment aggregate that carries a
// batch of orders from pickup to completion.
//
// Assignment transitions:
//
//	assigned → accepted → picked_up → delivering → completed
//	   │          │           │           │
//	   │          │           └───────────┴──> cancelled
//	   └──────────┴──> cancelled | reassigned
//
// completed, cancelled and reassigned are terminal. Reassignment is only
// possible before the rider has the packages.
package dispatch
