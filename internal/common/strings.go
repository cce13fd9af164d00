package common

// UnknownStr is the String() form of out-of-range enum values.
const UnknownStr = "unknown"

// InterfaceTypeStr is the Go spelling of the empty interface.
const InterfaceTypeStr = "any"
