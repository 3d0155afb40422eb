package pkgmgr

// Manager describes how to drive one package manager
type Manager struct {
	// Name is the binary looked up on PATH
	Name string

	// Path is the resolved binary, set on detection
	Path string

	UpdateArgs  []string
	InstallArgs []string

	// Sudo marks managers that need root to install
	Sudo bool
}

// DefaultPriority is the detection order used when none is configured
var DefaultPriority = []string{"brew", "apt", "apt-get", "dnf", "yum", "pacman"}

var knownManagers = map[string]Manager{
	"brew": {
		Name:        "brew",
		UpdateArgs:  []string{"update"},
		InstallArgs: []string{"install"},
	},
	"apt": {
		Name:        "apt",
		UpdateArgs:  []string{"update"},
		InstallArgs: []string{"install", "-y"},
		Sudo:        true,
	},
	"apt-get": {
		Name:        "apt-get",
		UpdateArgs:  []string{"update"},
		InstallArgs: []string{"install", "-y"},
		Sudo:        true,
	},
	"dnf": {
		Name:        "dnf",
		UpdateArgs:  []string{"makecache"},
		InstallArgs: []string{"install", "-y"},
		Sudo:        true,
	},
	"yum": {
		Name:        "yum",
		UpdateArgs:  []string{"makecache"},
		InstallArgs: []string{"install", "-y"},
		Sudo:        true,
	},
	"pacman": {
		Name:        "pacman",
		UpdateArgs:  []string{"-Sy"},
		InstallArgs: []string{"-S"},
		Sudo:        true,
	},
}

// Lookup returns the command table of a supported manager
func Lookup(name string) (Manager, bool) {
	m, ok := knownManagers[name]
	if !ok {
		return Manager{}, false
	}
	m.UpdateArgs = append([]string(nil), m.UpdateArgs...)
	m.InstallArgs = append([]string(nil), m.InstallArgs...)
	return m, true
}

// Supported reports whether name is a manager this package can drive
func Supported(name string) bool {
	_, ok := knownManagers[name]
	return ok
}

// homebrewLocations are checked after a bootstrap, before PATH is refreshed
var homebrewLocations = []string{"/opt/homebrew/bin/brew", "/usr/local/bin/brew", "/home/linuxbrew/.linuxbrew/bin/brew"}
