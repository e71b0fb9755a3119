package version

// Version is overridden at build time through -ldflags "-X".
var Version = "dev"
