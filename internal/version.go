package internal

// Version is the current lingoanki release
const Version = "0.3.0"
