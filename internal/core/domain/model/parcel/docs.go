// Package parcel implements the Parcel aggregate: a shipment between a sender and a
// receiver, its status state machine and its append-only status log.
//
// Key business rules:
//   - Parcels are created in Requested with one log entry attributed to the sender
//   - Weight must be positive and fee non-negative, at creation and on every update
//   - Every status change appends exactly one entry; entries are never rewritten
//   - Only the sender may cancel, and only while the parcel is Requested or Approved
//   - Administrative updates may change the status freely; Blocked/Cancelled/Delivered
//     flags supplied with an update must agree with the resulting status
package parcel
