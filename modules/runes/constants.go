package runes

// Version is the version of the runestone codec module.
const Version = "v0.1.0"
