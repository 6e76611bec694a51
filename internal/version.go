package internal

// Version is the sheettrans release version
const Version = "0.1.0"
