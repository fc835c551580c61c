// Package services contains domain services that span aggregates.
//
// AccessPolicy decides which identity may perform which action on a parcel or an
// account. It reads ownership fields and never mutates the resources it rules on.
package services
