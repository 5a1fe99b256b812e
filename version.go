package maqraa

// Version of the SDK and the maqraactl CLI.
const Version = "0.1.0"
