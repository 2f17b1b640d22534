// Package loader exposes the kernel's embedded application images. On
// real hardware these would be linked into the kernel image as named
// blobs (the teacher's link_app.S equivalent); under go build the
// natural analogue is a package that callers populate via Register,
// typically from a //go:embed-backed init in a platform-specific build.
package loader

// app pairs a name with its ELF bytes, kept in registration order so
// GetAppData(i) and GetNumApp agree on indexing.
type app struct {
	name string
	data []byte
}

var apps []app

// Register adds a named application image. Called during boot, once per
// embedded binary, before the first task is created.
func Register(name string, data []byte) {
	apps = append(apps, app{name: name, data: data})
}

// GetAppDataByName returns the ELF bytes for name, or nil if no such
// application was registered.
func GetAppDataByName(name string) []byte {
	for _, a := range apps {
		if a.name == name {
			return a.data
		}
	}
	return nil
}

// GetNumApp returns the number of registered applications.
func GetNumApp() int {
	return len(apps)
}

// GetAppData returns the ELF bytes of the i'th registered application.
func GetAppData(i int) []byte {
	return apps[i].data
}
