package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/ports/mocks"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/config"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"run", "init", "list", "watch", "path", "doctor", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "unpack" {
		t.Errorf("Expected root command Use to be 'unpack', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	if rootCmd.RunE == nil {
		t.Error("Root command should unpack when run without a subcommand")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestServiceInitialization verifies services can be initialized with mocks
func TestServiceInitialization(t *testing.T) {
	source := mocks.NewMockAssetSource(nil)
	dest := mocks.NewMockDestination()
	manifest := mocks.NewMockManifestRepository()

	if s := services.NewUnpackService(source, dest, manifest, nil, 0); s == nil {
		t.Error("UnpackService is nil")
	}

	if s := services.NewListService(source, dest, manifest); s == nil {
		t.Error("ListService is nil")
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  string
		flagName string
	}{
		{"run", "force"},
		{"run", "pick"},
		{"run", "once"},
		{"run", "ext"},
		{"run", "dest"},
		{"run", "source"},
		{"list", "all"},
		{"path", "no-copy"},
		{"watch", "quiet"},
		{"config", "reset"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", tt.command, err)
			}

			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				flag = cmd.InheritedFlags().Lookup(tt.flagName)
			}
			if flag == nil {
				t.Errorf("Flag '--%s' not found on command '%s'", tt.flagName, tt.command)
			}
		})
	}
}

// TestRootHasRunFlags verifies the bare command accepts run's flags
func TestRootHasRunFlags(t *testing.T) {
	for _, name := range []string{"force", "pick", "once"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Flag '--%s' not found on root command", name)
		}
	}
}

// TestCommandAliases verifies command aliases work
func TestCommandAliases(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"ls"})
	if err != nil {
		t.Fatalf("Alias 'ls' not found: %v", err)
	}
	if cmd.Name() != "list" {
		t.Errorf("Alias 'ls' resolved to '%s', want 'list'", cmd.Name())
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unpack", "config.yaml")

	if err := createDefaultConfig(path); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}

	// Every setting is commented out, so the file loads as the defaults
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Extension != config.DefaultExtension {
		t.Errorf("Extension = %q, want %q", cfg.Extension, config.DefaultExtension)
	}

	// An existing file is left alone
	if err := os.WriteFile(path, []byte("extension: .conf\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := createDefaultConfig(path); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "extension: .conf\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestDescribeExtension(t *testing.T) {
	if got := describeExtension(""); got != "all" {
		t.Errorf("describeExtension(\"\") = %q, want \"all\"", got)
	}
	if got := describeExtension(".ovpn"); got != ".ovpn" {
		t.Errorf("describeExtension(\".ovpn\") = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short.ovpn", 20, "short.ovpn"},
		{"a-very-long-asset-name.ovpn", 10, "a-very-..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

// TestRunCommand unpacks a source directory end to end
func TestRunCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))

	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"home.ovpn":  "client\nremote home.example.com 1194\n",
		"work.ovpn":  "client\nremote work.example.com 443\n",
		"readme.txt": "not a profile",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rootCmd.SetArgs([]string{"run", "--source", src, "--dest", dst})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(dst, name))
		if strings.HasSuffix(name, ".ovpn") {
			if err != nil {
				t.Errorf("%s was not unpacked: %v", name, err)
				continue
			}
			if string(got) != content {
				t.Errorf("%s content = %q, want %q", name, got, content)
			}
		} else if err == nil {
			t.Errorf("%s should not have been unpacked", name)
		}
	}
}

func TestListRow_TruncatesToColumnWidth(t *testing.T) {
	long := services.ListedAsset{
		Asset:  domain.Asset{Name: strings.Repeat("x", 50) + ".ovpn", Size: 2048},
		Status: domain.StatusPending,
	}

	row := listRow(long)
	if len(row[0]) != listNameWidth {
		t.Errorf("name cell is %d chars, want %d", len(row[0]), listNameWidth)
	}
	if !strings.HasSuffix(row[0], "...") {
		t.Errorf("expected truncated name to end with '...', got %q", row[0])
	}
	if row[1] != "2.0 KB" || row[2] != "pending" || row[3] != "-" {
		t.Errorf("unexpected row: %q", row)
	}

	short := services.ListedAsset{Asset: domain.Asset{Name: "home.ovpn"}}
	if got := listRow(short)[0]; got != "home.ovpn" {
		t.Errorf("short name changed: %q", got)
	}
}

func TestResetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unpack", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("extension: .conf\nbuffer_size: 64\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := resetConfig(path); err != nil {
		t.Fatalf("resetConfig failed: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("config after reset = %+v, want defaults", *cfg)
	}
}
