package kmain

import "embed"

// appFS holds every application image this kernel image ships with. Kmain
// walks it for *.elf entries and hands each to loader.Register before the
// first task is created.
//
//go:embed apps
var appFS embed.FS
