// Package courier contains the Courier aggregate of the internal courier
// registry ("livreur"). Couriers deliver parcels themselves or, in the case
// of the synthetic company courier representing the external carrier, stand
// in for deliveries performed outside the system.
package courier
