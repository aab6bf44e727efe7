package strata

// Version identifies the library build.
const Version = "0.1.0"
