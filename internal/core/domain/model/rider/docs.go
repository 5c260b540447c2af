// Package rider models the delivery rider: identity, vehicle, approval and
// availability state, and the running performance metrics (deliveries,
// earnings, rating) that dispatch uses to pick riders for batches.
package rider
